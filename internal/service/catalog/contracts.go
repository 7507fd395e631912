package catalog

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	List(ctx context.Context, includeInactive bool) ([]*domain.Resource, error)
}

// ServiceTypeRepository интерфейс справочника услуг
type ServiceTypeRepository interface {
	List(ctx context.Context) ([]*domain.ServiceType, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
