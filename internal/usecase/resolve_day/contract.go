package resolve_day

import (
	"context"
	"time"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	"github.com/kruglovd/CB-SchedulingService/internal/integrations/directory"
)

// ScheduleResolver интерфейс резолвера статуса слотов
type ScheduleResolver interface {
	ResolveDay(ctx context.Context, consultantID int64, date time.Time) ([]domain.ResolvedSlot, error)
}

// DirectoryClient интерфейс клиента справочника консультантов
type DirectoryClient interface {
	GetConsultant(ctx context.Context, consultantID int64) (*directory.Consultant, error)
}

// AvailabilityCache интерфейс кеша доступности
type AvailabilityCache interface {
	GetDay(ctx context.Context, consultantID int64, date time.Time) ([]domain.ResolvedSlot, bool)
	SetDay(ctx context.Context, consultantID int64, date time.Time, slots []domain.ResolvedSlot)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
