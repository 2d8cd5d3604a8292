package domain

import "github.com/kruglovd/CB-SchedulingService/pkg/types"

// SlotStatus is the resolved tri-state status of a time slot
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotUnavailable SlotStatus = "unavailable"
	SlotBooked      SlotStatus = "booked"
)

// ResolvedSlot is one slot of the canonical grid with its resolved status.
// Produced by the schedule resolver; precedence of the sources is
// closed-day > booked > unavailability override > default available.
type ResolvedSlot struct {
	StartTime       types.TimeString `json:"startTime"`
	EndTime         types.TimeString `json:"endTime"`
	DurationMinutes int              `json:"durationMinutes"`
	Status          SlotStatus       `json:"status"`
}

// IsBookable returns true if a new session may target this slot
func (s *ResolvedSlot) IsBookable() bool {
	return s.Status == SlotAvailable
}
