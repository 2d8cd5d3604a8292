package cancel_session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("cancel_session: session not found")

	// ErrInvalidStateTransition возвращается при попытке отменить сессию,
	// не находящуюся в отменяемом статусе (pending или confirmed)
	ErrInvalidStateTransition = errors.New("cancel_session: session is not cancellable in its current state")

	// ErrAccessDenied возвращается, когда отмену запрашивает посторонний
	ErrAccessDenied = errors.New("cancel_session: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_session: internal error")
)
