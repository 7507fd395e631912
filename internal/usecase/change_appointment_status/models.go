package change_appointment_status

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// Request действие сотрудника над записью
type Request struct {
	Actor         domain.Actor
	AppointmentID int64
	Action        domain.AppointmentAction

	// ResourceID используется только действием schedule
	ResourceID *int64
}

// Response состояние записи после перехода
type Response struct {
	AppointmentID  int64
	PreviousStatus string
	Status         string
	ResourceID     *int64
	ScheduledAt    time.Time
	EndsAt         time.Time
	UpdatedAt      time.Time
}
