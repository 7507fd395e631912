package check_resource_availability

import (
	"context"

	check "github.com/m04kA/SMC-ClinicService/internal/usecase/check_resource_availability"
)

type AvailabilityChecker interface {
	Execute(ctx context.Context, req *check.Request) (*check.Decision, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
