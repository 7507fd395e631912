package get_request_status

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/service/requests/models"
)

type RequestService interface {
	GetByReference(ctx context.Context, reference string) (*models.PublicRequestStatus, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
