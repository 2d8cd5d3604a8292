package notifier

// SessionBookedEvent событие о созданном бронировании
type SessionBookedEvent struct {
	SessionID    int64  `json:"sessionId"`
	ConsultantID int64  `json:"consultantId"`
	ClientID     int64  `json:"clientId"`
	Date         string `json:"date"`      // YYYY-MM-DD
	StartTime    string `json:"startTime"` // HH:MM
}

// SessionCancelledEvent событие об отмене сессии
type SessionCancelledEvent struct {
	SessionID        int64  `json:"sessionId"`
	ConsultantID     int64  `json:"consultantId"`
	ClientID         int64  `json:"clientId"`
	Reason           string `json:"reason"`
	RefundAmount     int64  `json:"refundAmount"`
	RefundPercentage int    `json:"refundPercentage"`
}
