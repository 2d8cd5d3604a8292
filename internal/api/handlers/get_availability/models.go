package get_availability

import (
	"github.com/kruglovd/CB-SchedulingService/internal/domain"
	resolveDay "github.com/kruglovd/CB-SchedulingService/internal/usecase/resolve_day"
)

// SlotResponse HTTP модель одного слота дня
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:30"
	EndTime         string `json:"endTime"`   // "11:30"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"` // available | unavailable | booked
}

// AvailabilityResponse HTTP модель статуса слотов дня
type AvailabilityResponse struct {
	ConsultantID int64          `json:"consultantId"`
	Date         string         `json:"date"` // "2026-09-15"
	Slots        []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveDay.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = fromResolvedSlot(slot)
	}

	return &AvailabilityResponse{
		ConsultantID: resp.ConsultantID,
		Date:         resp.Date,
		Slots:        slots,
	}
}

func fromResolvedSlot(slot domain.ResolvedSlot) SlotResponse {
	return SlotResponse{
		StartTime:       slot.StartTime.String(),
		EndTime:         slot.EndTime.String(),
		DurationMinutes: slot.DurationMinutes,
		Status:          string(slot.Status),
	}
}
