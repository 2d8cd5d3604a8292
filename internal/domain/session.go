package domain

import (
	"time"

	"github.com/kruglovd/CB-SchedulingService/pkg/types"
)

// SessionStatus represents the status of a consultation session
type SessionStatus string

const (
	StatusPendingPayment SessionStatus = "pending_payment"
	StatusPending        SessionStatus = "pending"
	StatusConfirmed      SessionStatus = "confirmed"
	StatusCompleted      SessionStatus = "completed"
	StatusCancelled      SessionStatus = "cancelled"
	StatusNoShow         SessionStatus = "no_show"
)

// Session represents a booked consultation in the system.
// A session occupies exactly one time slot identified by
// (consultant, date, start time).
type Session struct {
	ID              int64
	ConsultantID    int64
	ClientID        int64
	SessionDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          SessionStatus

	// Price in minor currency units, fixed at booking time
	Price int64

	// Client-provided key to deduplicate retried reserve requests
	IdempotencyKey *string

	Notes *string

	CancellationReason *string
	CancelledAt        *time.Time
	RefundAmount       *int64
	RefundPercentage   *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the session occupies its slot
// (i.e. has not reached a terminal state)
func (s *Session) IsActive() bool {
	return s.Status == StatusPendingPayment ||
		s.Status == StatusPending ||
		s.Status == StatusConfirmed
}

// CanBeCancelled returns true if the session can be cancelled by the
// refund policy engine. Sessions awaiting payment are released by the
// payment collaborator instead.
func (s *Session) CanBeCancelled() bool {
	return s.Status == StatusPending || s.Status == StatusConfirmed
}

// IsCancelled returns true if the session has been cancelled
func (s *Session) IsCancelled() bool {
	return s.Status == StatusCancelled
}

// IsFinished returns true if the session reached a terminal state
func (s *Session) IsFinished() bool {
	return s.Status == StatusCancelled ||
		s.Status == StatusCompleted ||
		s.Status == StatusNoShow
}

// StartsAt returns the wall-clock start of the session in the given location
func (s *Session) StartsAt(loc *time.Location) (time.Time, error) {
	minute, err := s.StartTime.MinuteOfDay()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := s.SessionDate.Date()
	return time.Date(y, m, d, minute/60, minute%60, 0, 0, loc), nil
}

// ConsultantSessionsFilter фильтр для получения сессий консультанта
type ConsultantSessionsFilter struct {
	ConsultantID    int64          // Обязательный параметр
	Date            *time.Time     // Фильтр по конкретной дате (опционально)
	Status          *SessionStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли завершённые и отменённые сессии
}
