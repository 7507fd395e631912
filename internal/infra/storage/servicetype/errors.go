package servicetype

import "errors"

var (
	// ErrServiceTypeNotFound возвращается, когда услуга не найдена
	ErrServiceTypeNotFound = errors.New("servicetype.repository: service type not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("servicetype.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("servicetype.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("servicetype.repository: failed to scan row")
)
