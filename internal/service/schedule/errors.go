package schedule

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках резолвера
	ErrInternal = errors.New("schedule.service: internal error")
)
