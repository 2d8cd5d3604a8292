package replace_overrides

import (
	"context"
	"time"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	"github.com/kruglovd/CB-SchedulingService/internal/integrations/directory"
	"github.com/kruglovd/CB-SchedulingService/pkg/types"
)

// AvailabilityRepository интерфейс репозитория оверрайдов доступности
type AvailabilityRepository interface {
	ReplaceForDate(ctx context.Context, consultantID int64, date time.Time, unavailableStarts []types.TimeString) error
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetOccupiedStarts(ctx context.Context, consultantID int64, date time.Time) ([]types.TimeString, error)
}

// ScheduleResolver интерфейс резолвера статуса слотов
type ScheduleResolver interface {
	Config() domain.ScheduleConfig
}

// DirectoryClient интерфейс клиента справочника консультантов
type DirectoryClient interface {
	GetConsultant(ctx context.Context, consultantID int64) (*directory.Consultant, error)
}

// AvailabilityCache интерфейс кеша доступности
type AvailabilityCache interface {
	InvalidateDay(ctx context.Context, consultantID int64, date time.Time)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
