package stream_changes

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// ChangeSubscriber источник событий изменений (Redis pub/sub или заглушка)
type ChangeSubscriber interface {
	Subscribe(ctx context.Context, collections []string, callback func(domain.ChangeEvent)) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
