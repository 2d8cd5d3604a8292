package cancel_session

import (
	"time"

	cancelSession "github.com/kruglovd/CB-SchedulingService/internal/usecase/cancel_session"
)

// CancelSessionRequest HTTP request model
type CancelSessionRequest struct {
	Reason string  `json:"reason"`
	Notes  *string `json:"notes,omitempty"`
}

// CancellationResponse HTTP response model
type CancellationResponse struct {
	SessionID        int64   `json:"sessionId"`
	Reason           string  `json:"reason"`
	Notes            *string `json:"notes,omitempty"`
	RefundAmount     int64   `json:"refundAmount"` // minor currency units
	RefundPercentage int     `json:"refundPercentage"`
	CancelledAt      string  `json:"cancelledAt"` // ISO 8601
	RefundRequested  bool    `json:"refundRequested"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelSessionRequest) ToUseCaseRequest(sessionID, callerID int64) *cancelSession.Request {
	return &cancelSession.Request{
		SessionID: sessionID,
		CallerID:  callerID,
		Reason:    r.Reason,
		Notes:     r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelSession.Response) *CancellationResponse {
	return &CancellationResponse{
		SessionID:        resp.SessionID,
		Reason:           resp.Reason,
		Notes:            resp.Notes,
		RefundAmount:     resp.RefundAmount,
		RefundPercentage: resp.RefundPercentage,
		CancelledAt:      resp.CancelledAt.Format(time.RFC3339),
		RefundRequested:  resp.RefundRequested,
	}
}
