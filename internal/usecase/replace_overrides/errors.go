package replace_overrides

import "errors"

var (
	// ErrConsultantNotFound возвращается, когда консультант не найден в справочнике
	ErrConsultantNotFound = errors.New("replace_overrides: consultant not found")

	// ErrAccessDenied возвращается, когда расписание меняет не его владелец
	ErrAccessDenied = errors.New("replace_overrides: access denied")

	// ErrClosedDay возвращается при попытке задать оверрайды на выходной день
	ErrClosedDay = errors.New("replace_overrides: date falls on a closed weekday")

	// ErrUnknownSlot возвращается, когда время начала не входит в сетку слотов
	ErrUnknownSlot = errors.New("replace_overrides: start time is not in the slot grid")

	// ErrSlotBooked возвращается при попытке пометить недоступным слот,
	// занятый активной сессией
	ErrSlotBooked = errors.New("replace_overrides: slot is occupied by an active session")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("replace_overrides: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("replace_overrides: internal error")
)
