package directory

import "errors"

var (
	// ErrConsultantNotFound возвращается, когда консультант не найден в справочнике
	ErrConsultantNotFound = errors.New("directory.client: consultant not found")

	// ErrInvalidResponse возвращается при некорректном ответе справочника
	ErrInvalidResponse = errors.New("directory.client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("directory.client: internal error")
)
