package get_schedule_config

import (
	"github.com/kruglovd/CB-SchedulingService/internal/domain"
)

type ScheduleResolver interface {
	Config() domain.ScheduleConfig
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
