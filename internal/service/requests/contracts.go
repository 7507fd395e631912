package requests

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// RequestRepository интерфейс репозитория публичных заявок
type RequestRepository interface {
	GetByReference(ctx context.Context, reference string) (*domain.AppointmentRequest, error)
	List(ctx context.Context, filter domain.RequestsFilter) ([]*domain.AppointmentRequest, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.RequestStatus, appointmentID *int64) error
}

// ChangePublisher уведомляет клиентов об изменениях
type ChangePublisher interface {
	Publish(ctx context.Context, event domain.ChangeEvent)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
