package domain

import (
	"time"

	"github.com/kruglovd/CB-SchedulingService/pkg/types"
)

// ScheduleConfig is the fixed daily operating window for consultations.
// One per deployment: all consultants share the same opening hours, slot
// duration and weekly closed day. Times are wall-clock in the operating
// timezone; no per-date variation.
type ScheduleConfig struct {
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	SlotDurationMinutes int
	ClosedWeekday       time.Weekday
}

// IsClosedDay returns true if the date falls on the weekly closed day.
// Closed-day status is a hard rule: it never depends on stored data.
func (c ScheduleConfig) IsClosedDay(date time.Time) bool {
	return date.Weekday() == c.ClosedWeekday
}

// SlotGrid generates the canonical ordered list of slot start times for a
// working day. The grid is a pure function of the configured window: only
// whole slots that end at or before closing time are included, partial
// slots at the boundary are never emitted.
func (c ScheduleConfig) SlotGrid() ([]types.TimeString, error) {
	grid := make([]types.TimeString, 0)
	current := c.OpenTime

	for current.IsBefore(c.CloseTime) {
		slotEnd, err := current.AddMinutes(c.SlotDurationMinutes)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(c.CloseTime) {
			break
		}

		grid = append(grid, current)

		current = slotEnd
	}

	return grid, nil
}

// ContainsSlot returns true if the given start time and duration identify a
// slot of the canonical grid
func (c ScheduleConfig) ContainsSlot(start types.TimeString, durationMinutes int) (bool, error) {
	if durationMinutes != c.SlotDurationMinutes {
		return false, nil
	}

	grid, err := c.SlotGrid()
	if err != nil {
		return false, err
	}

	for _, slot := range grid {
		if slot == start {
			return true, nil
		}
	}
	return false, nil
}
