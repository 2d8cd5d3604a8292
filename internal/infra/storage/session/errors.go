package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrSlotTaken возвращается, когда слот уже занят активной сессией
	// (нарушение частичного уникального индекса по консультанту+дате+времени)
	ErrSlotTaken = errors.New("session.repository: slot already taken")

	// ErrDuplicateIdempotencyKey возвращается при повторе ключа идемпотентности
	ErrDuplicateIdempotencyKey = errors.New("session.repository: duplicate idempotency key")

	// ErrSessionNotCancellable возвращается, когда условный переход в cancelled
	// не затронул ни одной строки (сессия уже в финальном статусе)
	ErrSessionNotCancellable = errors.New("session.repository: session is not cancellable")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("session.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("session.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("session.repository: failed to scan row")
)
