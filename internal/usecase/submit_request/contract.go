package submit_request

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/usecase/get_available_slots"
)

// RequestRepository интерфейс репозитория публичных заявок
type RequestRepository interface {
	Create(ctx context.Context, req *domain.AppointmentRequest) (*domain.AppointmentRequest, error)
}

// AvailabilityCalculator расчет доступных слотов на дату
type AvailabilityCalculator interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ChangePublisher уведомляет клиентов об изменениях
type ChangePublisher interface {
	Publish(ctx context.Context, event domain.ChangeEvent)
}

// ReferenceGenerator выдает публичный идентификатор заявки
type ReferenceGenerator interface {
	NewReference() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
