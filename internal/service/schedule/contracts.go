package schedule

import (
	"context"
	"time"

	"github.com/kruglovd/CB-SchedulingService/pkg/types"
)

// SessionRepository интерфейс журнала сессий (booking ledger)
type SessionRepository interface {
	// GetOccupiedStarts возвращает времена начала слотов, занятых активными сессиями
	GetOccupiedStarts(ctx context.Context, consultantID int64, date time.Time) ([]types.TimeString, error)
}

// AvailabilityRepository интерфейс хранилища оверрайдов доступности
type AvailabilityRepository interface {
	// GetUnavailableStarts возвращает времена начала слотов, помеченных недоступными
	GetUnavailableStarts(ctx context.Context, consultantID int64, date time.Time) ([]types.TimeString, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
