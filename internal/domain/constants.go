package domain

// Default schedule values (overridable in config.toml)
const (
	DefaultOpenTime            = "09:30"
	DefaultCloseTime           = "18:30"
	DefaultSlotDurationMinutes = 60
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 15
	MaxSlotDurationMinutes      = 240
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, при которых сессия занимает свой слот
// Используется при вычислении занятых слотов дня
var ActiveStatuses = []SessionStatus{
	StatusPendingPayment,
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses список финальных статусов сессии
// Сессия в финальном статусе неизменяема и не занимает слот
var TerminalStatuses = []SessionStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
