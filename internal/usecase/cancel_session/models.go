package cancel_session

import (
	"time"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
)

// Request модель запроса на отмену сессии
type Request struct {
	SessionID int64   // ID отменяемой сессии
	CallerID  int64   // ID инициатора (клиент или консультант сессии)
	Reason    string  // Причина отмены
	Notes     *string // Дополнительные заметки (опционально)
}

// Response модель ответа с записью об отмене
type Response struct {
	SessionID        int64     // ID сессии
	Reason           string    // Причина отмены
	Notes            *string   // Заметки
	RefundAmount     int64     // Сумма возврата в минимальных единицах валюты
	RefundPercentage int       // Процент возврата по тарифной сетке
	CancelledAt      time.Time // Время отмены
	RefundRequested  bool      // Создана ли заявка на возврат
}

func toResponse(record *domain.CancellationRecord, refundRequested bool) *Response {
	return &Response{
		SessionID:        record.SessionID,
		Reason:           record.Reason,
		Notes:            record.Notes,
		RefundAmount:     record.RefundAmount,
		RefundPercentage: record.RefundPercentage,
		CancelledAt:      record.CancelledAt,
		RefundRequested:  refundRequested,
	}
}
