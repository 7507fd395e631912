package promote_request

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// Request выбор сотрудника при подтверждении заявки
// Собирается целиком и валидируется до любых записей
type Request struct {
	Actor       domain.Actor
	RequestID   int64
	ResourceID  int64
	ServiceType string

	// Необязательная привязка к зарегистрированному клиенту;
	// без неё в записи сохраняются имена из заявки
	ClientID *int64
	PetID    *int64
}

// Response результат подтверждения заявки
type Response struct {
	RequestID       int64
	RequestStatus   string
	AppointmentID   int64
	ResourceID      int64
	ScheduledAt     time.Time
	EndsAt          time.Time
	DurationMinutes int
	ServiceType     string

	// Reused означает, что запись для заявки уже существовала (повторный вызов)
	Reused bool
}
