package create_session

import (
	"time"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	reserveSession "github.com/kruglovd/CB-SchedulingService/internal/usecase/reserve_session"
	"github.com/kruglovd/CB-SchedulingService/pkg/types"
)

// CreateSessionRequest HTTP request model
type CreateSessionRequest struct {
	ConsultantID    int64   `json:"consultantId"`
	Date            string  `json:"date"`      // "2026-09-15"
	StartTime       string  `json:"startTime"` // "10:30"
	DurationMinutes int     `json:"durationMinutes"`
	IdempotencyKey  *string `json:"idempotencyKey,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ID              int64   `json:"id"`
	ConsultantID    int64   `json:"consultantId"`
	ClientID        int64   `json:"clientId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Price           int64   `json:"price"` // minor currency units
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// ID клиента берется из контекста аутентификации, не из тела.
func (r *CreateSessionRequest) ToUseCaseRequest(clientID int64) (*reserveSession.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &reserveSession.Request{
		ConsultantID:    r.ConsultantID,
		ClientID:        clientID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		IdempotencyKey:  r.IdempotencyKey,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSession.Response) *SessionResponse {
	return &SessionResponse{
		ID:              resp.ID,
		ConsultantID:    resp.ConsultantID,
		ClientID:        resp.ClientID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Price:           resp.Price,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
