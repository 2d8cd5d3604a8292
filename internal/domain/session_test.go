package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_StatusPredicates(t *testing.T) {
	tests := []struct {
		status       SessionStatus
		active       bool
		cancellable  bool
		finished     bool
	}{
		{status: StatusPendingPayment, active: true, cancellable: false, finished: false},
		{status: StatusPending, active: true, cancellable: true, finished: false},
		{status: StatusConfirmed, active: true, cancellable: true, finished: false},
		{status: StatusCompleted, active: false, cancellable: false, finished: true},
		{status: StatusCancelled, active: false, cancellable: false, finished: true},
		{status: StatusNoShow, active: false, cancellable: false, finished: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			s := &Session{Status: tt.status}
			assert.Equal(t, tt.active, s.IsActive())
			assert.Equal(t, tt.cancellable, s.CanBeCancelled())
			assert.Equal(t, tt.finished, s.IsFinished())
		})
	}
}

func TestSession_StartsAt(t *testing.T) {
	s := &Session{
		SessionDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:30",
	}

	startsAt, err := s.StartsAt(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC), startsAt)
}

func TestSession_StartsAt_InvalidTime(t *testing.T) {
	s := &Session{
		SessionDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:   "broken",
	}

	_, err := s.StartsAt(time.UTC)
	assert.Error(t, err)
}
