package reschedule_appointment

import (
	"context"

	reschedule "github.com/m04kA/SMC-ClinicService/internal/usecase/reschedule_appointment"
)

type RescheduleUseCase interface {
	Execute(ctx context.Context, req *reschedule.Request) (*reschedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
