package update_availability

import (
	"context"

	replaceOverrides "github.com/kruglovd/CB-SchedulingService/internal/usecase/replace_overrides"
)

type ReplaceOverridesUseCase interface {
	Execute(ctx context.Context, req *replaceOverrides.Request) (*replaceOverrides.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
