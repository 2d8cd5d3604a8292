package cancel_session

import (
	"context"
	"time"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	"github.com/kruglovd/CB-SchedulingService/internal/integrations/notifier"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	CancelConditional(ctx context.Context, id int64, reason string, cancelledAt time.Time, refundAmount int64, refundPercentage int) error
}

// CancellationRepository интерфейс репозитория отмен и возвратов
type CancellationRepository interface {
	CreateRecord(ctx context.Context, record *domain.CancellationRecord) error
	CreateRefundRequest(ctx context.Context, request *domain.RefundRequest) (*domain.RefundRequest, error)
}

// Notifier интерфейс клиента уведомлений
type Notifier interface {
	SessionCancelled(ctx context.Context, event notifier.SessionCancelledEvent) error
}

// AvailabilityCache интерфейс кеша доступности
type AvailabilityCache interface {
	InvalidateDay(ctx context.Context, consultantID int64, date time.Time)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
