package resolve_day

import "errors"

var (
	// ErrConsultantNotFound возвращается, когда консультант не найден в справочнике
	ErrConsultantNotFound = errors.New("resolve_day: consultant not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("resolve_day: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resolve_day: internal error")
)
