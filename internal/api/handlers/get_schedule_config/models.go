package get_schedule_config

import (
	"github.com/kruglovd/CB-SchedulingService/internal/domain"
)

// ScheduleConfigResponse HTTP модель рабочего расписания
type ScheduleConfigResponse struct {
	OpenTime            string `json:"openTime"`  // "09:30"
	CloseTime           string `json:"closeTime"` // "18:30"
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	ClosedWeekday       string `json:"closedWeekday"` // "Sunday"
}

// FromDomainConfig конвертирует доменный конфиг в HTTP response
func FromDomainConfig(cfg domain.ScheduleConfig) *ScheduleConfigResponse {
	return &ScheduleConfigResponse{
		OpenTime:            cfg.OpenTime.String(),
		CloseTime:           cfg.CloseTime.String(),
		SlotDurationMinutes: cfg.SlotDurationMinutes,
		ClosedWeekday:       cfg.ClosedWeekday.String(),
	}
}
