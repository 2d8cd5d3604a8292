package get_availability

import (
	"context"

	resolveDay "github.com/kruglovd/CB-SchedulingService/internal/usecase/resolve_day"
)

type ResolveDayUseCase interface {
	Execute(ctx context.Context, req *resolveDay.Request) (*resolveDay.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
