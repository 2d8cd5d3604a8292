package get_client_sessions

import (
	"context"

	"github.com/kruglovd/CB-SchedulingService/internal/service/sessions/models"
)

type SessionService interface {
	GetClientSessions(ctx context.Context, req *models.GetClientSessionsRequest) (*models.SessionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
