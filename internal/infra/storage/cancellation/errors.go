package cancellation

import "errors"

var (
	// ErrRecordNotFound возвращается, когда запись об отмене не найдена
	ErrRecordNotFound = errors.New("cancellation.repository: record not found")

	// ErrRecordExists возвращается при попытке создать вторую запись об отмене
	// для той же сессии (записи append-only, ровно одна на отменённую сессию)
	ErrRecordExists = errors.New("cancellation.repository: record already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("cancellation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("cancellation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("cancellation.repository: failed to scan row")
)
