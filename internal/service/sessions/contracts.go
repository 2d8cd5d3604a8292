package sessions

import (
	"context"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	"github.com/kruglovd/CB-SchedulingService/internal/integrations/directory"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.SessionStatus) ([]*domain.Session, error)
	GetByConsultantWithFilter(ctx context.Context, filter domain.ConsultantSessionsFilter) ([]*domain.Session, error)
}

// DirectoryClient интерфейс клиента справочника консультантов
type DirectoryClient interface {
	GetConsultant(ctx context.Context, consultantID int64) (*directory.Consultant, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
