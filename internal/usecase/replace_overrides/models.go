package replace_overrides

import (
	"time"

	"github.com/kruglovd/CB-SchedulingService/pkg/types"
)

// Request модель запроса на замену оверрайдов доступности даты
type Request struct {
	ConsultantID      int64              // ID консультанта, чьё расписание меняется
	CallerID          int64              // ID инициатора (должен совпадать с ConsultantID)
	Date              time.Time          // Дата, оверрайды которой заменяются целиком
	UnavailableStarts []types.TimeString // Времена начала слотов, помечаемых недоступными
}

// Response модель ответа с принятым набором оверрайдов
type Response struct {
	ConsultantID      int64              // ID консультанта
	Date              string             // Дата в формате YYYY-MM-DD
	UnavailableStarts []types.TimeString // Сохранённые пометки недоступности
}
