package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefundPercentageFor(t *testing.T) {
	tests := []struct {
		name           string
		timeUntilStart time.Duration
		want           int
	}{
		{name: "well in advance", timeUntilStart: 72 * time.Hour, want: 100},
		{name: "exactly 48h is full refund", timeUntilStart: 48 * time.Hour, want: 100},
		{name: "just under 48h", timeUntilStart: 48*time.Hour - time.Minute, want: 75},
		{name: "exactly 24h", timeUntilStart: 24 * time.Hour, want: 75},
		{name: "just under 24h", timeUntilStart: 24*time.Hour - time.Minute, want: 50},
		{name: "exactly 2h", timeUntilStart: 2 * time.Hour, want: 50},
		{name: "just under 2h", timeUntilStart: 2*time.Hour - time.Minute, want: 0},
		{name: "session already started", timeUntilStart: -time.Hour, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RefundPercentageFor(tt.timeUntilStart))
		})
	}
}

func TestRefundAmountFor(t *testing.T) {
	tests := []struct {
		name       string
		price      int64
		percentage int
		want       int64
	}{
		{name: "full refund", price: 500, percentage: 100, want: 500},
		{name: "three quarters", price: 500, percentage: 75, want: 375},
		{name: "half", price: 500, percentage: 50, want: 250},
		{name: "no refund", price: 500, percentage: 0, want: 0},
		{name: "rounding half away from zero", price: 333, percentage: 50, want: 167},
		{name: "zero price", price: 0, percentage: 100, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RefundAmountFor(tt.price, tt.percentage))
		})
	}
}
