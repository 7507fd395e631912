package create_appointment

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/usecase/check_resource_availability"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// ResourceRepository блокировка календаря ресурса
type ResourceRepository interface {
	BumpScheduleVersion(ctx context.Context, id int64) (int64, error)
}

// ServiceTypeRepository справочник длительностей услуг
type ServiceTypeRepository interface {
	Catalog(ctx context.Context) (domain.DurationCatalog, error)
}

// ClientRepository зарегистрированные клиенты и питомцы
type ClientRepository interface {
	GetClientByID(ctx context.Context, id int64) (*domain.Client, error)
	GetPetByID(ctx context.Context, id int64) (*domain.Pet, error)
}

// AvailabilityChecker детектор пересечений на ресурсе
type AvailabilityChecker interface {
	Require(ctx context.Context, req *check_resource_availability.Request) (*check_resource_availability.Decision, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
