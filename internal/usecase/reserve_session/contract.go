package reserve_session

import (
	"context"
	"time"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	"github.com/kruglovd/CB-SchedulingService/internal/integrations/directory"
	"github.com/kruglovd/CB-SchedulingService/internal/integrations/notifier"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Session, error)
}

// ScheduleResolver интерфейс резолвера статуса слотов
type ScheduleResolver interface {
	Config() domain.ScheduleConfig
	ResolveDay(ctx context.Context, consultantID int64, date time.Time) ([]domain.ResolvedSlot, error)
}

// DirectoryClient интерфейс клиента справочника консультантов
type DirectoryClient interface {
	GetConsultant(ctx context.Context, consultantID int64) (*directory.Consultant, error)
}

// Notifier интерфейс клиента уведомлений
type Notifier interface {
	SessionBooked(ctx context.Context, event notifier.SessionBookedEvent) error
}

// AvailabilityCache интерфейс кеша доступности
type AvailabilityCache interface {
	InvalidateDay(ctx context.Context, consultantID int64, date time.Time)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
