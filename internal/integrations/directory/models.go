package directory

// Consultant профиль консультанта из справочника
type Consultant struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`

	// Ставка за час в минимальных единицах валюты
	HourlyRate int64 `json:"hourlyRate"`

	// Требуется ли предоплата: определяет начальный статус сессии
	// (pending_payment вместо pending)
	RequiresPrepayment bool `json:"requiresPrepayment"`

	Active bool `json:"active"`
}
