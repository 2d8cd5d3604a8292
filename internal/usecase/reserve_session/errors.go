package reserve_session

import "errors"

var (
	// ErrConsultantNotFound возвращается, когда консультант не найден
	ErrConsultantNotFound = errors.New("reserve_session: consultant not found")

	// ErrConsultantInactive возвращается, когда консультант не принимает записи
	ErrConsultantInactive = errors.New("reserve_session: consultant is not active")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("reserve_session: invalid session date")

	// ErrUnknownSlot возвращается, когда запрошенный слот не входит в
	// каноническую сетку (время или длительность вне расписания)
	ErrUnknownSlot = errors.New("reserve_session: slot is not in the schedule grid")

	// ErrClosedDay возвращается при попытке бронирования на выходной день
	ErrClosedDay = errors.New("reserve_session: date falls on the closed weekday")

	// ErrSlotUnavailable возвращается, когда консультант пометил слот недоступным
	ErrSlotUnavailable = errors.New("reserve_session: slot is marked unavailable")

	// ErrSlotAlreadyBooked возвращается, когда слот уже занят другой сессией
	ErrSlotAlreadyBooked = errors.New("reserve_session: slot is already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_session: internal error")
)
