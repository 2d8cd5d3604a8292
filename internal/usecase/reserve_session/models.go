package reserve_session

import (
	"time"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	"github.com/kruglovd/CB-SchedulingService/pkg/types"
)

// Request модель запроса на резервирование слота
type Request struct {
	ConsultantID    int64            // ID консультанта
	ClientID        int64            // ID клиента
	Date            time.Time        // Дата сессии (без времени)
	StartTime       types.TimeString // Время начала слота (например, "10:30")
	DurationMinutes int              // Длительность, должна совпадать с длиной слота
	IdempotencyKey  *string          // Ключ идемпотентности (опционально, UUID)
	Notes           *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной сессией
type Response struct {
	ID              int64            // ID созданной сессии
	ConsultantID    int64            // ID консультанта
	ClientID        int64            // ID клиента
	Date            time.Time        // Дата сессии
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус сессии
	Price           int64            // Цена в минимальных единицах валюты
	Notes           *string          // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

func toResponse(session *domain.Session) *Response {
	return &Response{
		ID:              session.ID,
		ConsultantID:    session.ConsultantID,
		ClientID:        session.ClientID,
		Date:            session.SessionDate,
		StartTime:       session.StartTime,
		DurationMinutes: session.DurationMinutes,
		Status:          string(session.Status),
		Price:           session.Price,
		Notes:           session.Notes,
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}
}
