package promote_request

import (
	"context"

	promoteRequest "github.com/m04kA/SMC-ClinicService/internal/usecase/promote_request"
)

type PromoteRequestUseCase interface {
	Execute(ctx context.Context, req *promoteRequest.Request) (*promoteRequest.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
