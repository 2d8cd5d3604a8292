package domain

import "time"

// RefundStatus represents the settlement status of a refund request
type RefundStatus string

const (
	RefundPending   RefundStatus = "pending"
	RefundProcessed RefundStatus = "processed"
)

// Refund tier boundaries: percentage of the session price refunded
// depending on how long before the scheduled start the cancellation
// happens. Boundaries are inclusive at-or-above each tier.
const (
	fullRefundNotice    = 48 * time.Hour
	partialRefundNotice = 24 * time.Hour
	minimalRefundNotice = 2 * time.Hour
)

// CancellationRecord is the append-only record produced when a session is
// cancelled. Exactly one per cancelled session; never modified afterwards.
type CancellationRecord struct {
	SessionID        int64
	Reason           string
	Notes            *string
	RefundAmount     int64
	RefundPercentage int
	CancelledAt      time.Time
}

// RefundRequest is handed off to the payment collaborator for settlement.
// Created only when the computed refund amount is positive.
type RefundRequest struct {
	ID          int64
	SessionID   int64
	Amount      int64
	Status      RefundStatus
	RequestedAt time.Time
}

// RefundPercentageFor returns the refund percentage for a cancellation
// happening timeUntilStart before the scheduled session start. A session
// whose start has already passed falls into the lowest tier.
func RefundPercentageFor(timeUntilStart time.Duration) int {
	switch {
	case timeUntilStart >= fullRefundNotice:
		return 100
	case timeUntilStart >= partialRefundNotice:
		return 75
	case timeUntilStart >= minimalRefundNotice:
		return 50
	default:
		return 0
	}
}

// RefundAmountFor computes the refunded amount in minor currency units,
// rounding half away from zero to the smallest unit
func RefundAmountFor(price int64, percentage int) int64 {
	if price <= 0 || percentage <= 0 {
		return 0
	}
	return (price*int64(percentage) + 50) / 100
}
