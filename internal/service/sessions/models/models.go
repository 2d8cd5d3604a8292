package models

import (
	"errors"
	"time"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid session status")
)

// Request модели

// GetClientSessionsRequest запрос на получение сессий клиента
type GetClientSessionsRequest struct {
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// GetConsultantSessionsRequest запрос на получение сессий консультанта
type GetConsultantSessionsRequest struct {
	CallerID        int64      `json:"callerId"`
	ConsultantID    int64      `json:"consultantId"`
	Date            *time.Time `json:"date,omitempty"`            // Фильтр по дате (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить завершённые и отменённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetConsultantSessionsRequest) ToDomainFilter() (domain.ConsultantSessionsFilter, error) {
	filter := domain.ConsultantSessionsFilter{
		ConsultantID:    r.ConsultantID,
		Date:            r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainSessionStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// SessionResponse ответ с данными сессии
type SessionResponse struct {
	ID              int64  `json:"id"`
	ConsultantID    int64  `json:"consultantId"`
	ClientID        int64  `json:"clientId"`
	SessionDate     string `json:"sessionDate"` // "2026-09-15"
	StartTime       string `json:"startTime"`   // "10:30"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	Price           int64  `json:"price"` // minor currency units

	Notes *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format
	RefundAmount       *int64  `json:"refundAmount,omitempty"`
	RefundPercentage   *int    `json:"refundPercentage,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionListResponse ответ со списком сессий
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// Методы конвертации

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(s *domain.Session) *SessionResponse {
	if s == nil {
		return nil
	}

	resp := &SessionResponse{
		ID:                 s.ID,
		ConsultantID:       s.ConsultantID,
		ClientID:           s.ClientID,
		SessionDate:        s.SessionDate.Format(domain.DateFormat),
		StartTime:          s.StartTime.String(),
		DurationMinutes:    s.DurationMinutes,
		Status:             string(s.Status),
		Price:              s.Price,
		Notes:              s.Notes,
		CancellationReason: s.CancellationReason,
		RefundAmount:       s.RefundAmount,
		RefundPercentage:   s.RefundPercentage,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if s.CancelledAt != nil {
		cancelledStr := s.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainSessionList конвертирует список domain моделей в DTO
func FromDomainSessionList(sessions []*domain.Session) *SessionListResponse {
	if sessions == nil {
		return &SessionListResponse{
			Sessions: []SessionResponse{},
		}
	}

	resp := &SessionListResponse{
		Sessions: make([]SessionResponse, len(sessions)),
	}

	for i, session := range sessions {
		if sessionResp := FromDomainSession(session); sessionResp != nil {
			resp.Sessions[i] = *sessionResp
		}
	}

	return resp
}

// ToDomainSessionStatus конвертирует строку в domain.SessionStatus с валидацией
func ToDomainSessionStatus(status string) (domain.SessionStatus, error) {
	s := domain.SessionStatus(status)

	// Валидируем статус
	validStatuses := []domain.SessionStatus{
		domain.StatusPendingPayment,
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
