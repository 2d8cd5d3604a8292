package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kruglovd/CB-SchedulingService/pkg/types"
)

func testConfig() ScheduleConfig {
	return ScheduleConfig{
		OpenTime:            "09:30",
		CloseTime:           "18:30",
		SlotDurationMinutes: 60,
		ClosedWeekday:       time.Sunday,
	}
}

func TestScheduleConfig_SlotGrid(t *testing.T) {
	tests := []struct {
		name string
		cfg  ScheduleConfig
		want []types.TimeString
	}{
		{
			name: "hour slots over nine hour window",
			cfg:  testConfig(),
			want: []types.TimeString{
				"09:30", "10:30", "11:30", "12:30", "13:30",
				"14:30", "15:30", "16:30", "17:30",
			},
		},
		{
			name: "half hour slots",
			cfg: ScheduleConfig{
				OpenTime:            "10:00",
				CloseTime:           "12:00",
				SlotDurationMinutes: 30,
			},
			want: []types.TimeString{"10:00", "10:30", "11:00", "11:30"},
		},
		{
			name: "partial slot at the boundary is dropped",
			cfg: ScheduleConfig{
				OpenTime:            "10:00",
				CloseTime:           "11:30",
				SlotDurationMinutes: 60,
			},
			want: []types.TimeString{"10:00"},
		},
		{
			name: "window shorter than one slot yields empty grid",
			cfg: ScheduleConfig{
				OpenTime:            "10:00",
				CloseTime:           "10:30",
				SlotDurationMinutes: 60,
			},
			want: []types.TimeString{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.SlotGrid()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScheduleConfig_IsClosedDay(t *testing.T) {
	cfg := testConfig()

	// 2026-09-06 is a Sunday, 2026-09-07 is a Monday
	assert.True(t, cfg.IsClosedDay(time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)))
	assert.False(t, cfg.IsClosedDay(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)))
}

func TestScheduleConfig_ContainsSlot(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name     string
		start    types.TimeString
		duration int
		want     bool
	}{
		{name: "first slot", start: "09:30", duration: 60, want: true},
		{name: "last slot", start: "17:30", duration: 60, want: true},
		{name: "off grid start", start: "10:00", duration: 60, want: false},
		{name: "past closing", start: "18:30", duration: 60, want: false},
		{name: "wrong duration", start: "09:30", duration: 30, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cfg.ContainsSlot(tt.start, tt.duration)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
