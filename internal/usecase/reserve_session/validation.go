package reserve_session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ConsultantID <= 0 {
		return fmt.Errorf("%w: consultantID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	// Ключ идемпотентности, если передан, должен быть валидным UUID
	if req.IdempotencyKey != nil {
		if _, err := uuid.Parse(*req.IdempotencyKey); err != nil {
			return fmt.Errorf("%w: idempotencyKey must be a valid UUID", ErrInvalidInput)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата сессии не в прошлом
func validateDate(sessionDate time.Time, now time.Time) error {
	if isDateInPast(sessionDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// sessionPrice вычисляет цену сессии из часовой ставки консультанта
func sessionPrice(hourlyRate int64, durationMinutes int) int64 {
	return hourlyRate * int64(durationMinutes) / 60
}

// initialStatus возвращает начальный статус сессии: требующие предоплаты
// консультанты получают pending_payment, остальные pending
func initialStatus(requiresPrepayment bool) domain.SessionStatus {
	if requiresPrepayment {
		return domain.StatusPendingPayment
	}
	return domain.StatusPending
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
