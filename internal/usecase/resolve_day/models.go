package resolve_day

import (
	"time"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
)

// Request модель запроса статуса слотов дня
type Request struct {
	ConsultantID int64     // ID консультанта
	Date         time.Time // Дата запрашиваемого дня
}

// Response модель ответа со статусом слотов дня
type Response struct {
	ConsultantID int64                 // ID консультанта
	Date         string                // Дата в формате YYYY-MM-DD
	Slots        []domain.ResolvedSlot // Упорядоченный список слотов дня
}
