package get_catalog

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/service/catalog/models"
)

type CatalogService interface {
	Get(ctx context.Context, includeInactive bool) (*models.CatalogResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
