package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Request перенос записи
// Пустые ServiceType и ResourceID оставляют текущие значения
type Request struct {
	Actor         domain.Actor
	AppointmentID int64

	Date        time.Time
	StartTime   types.TimeString
	ServiceType *string
	ResourceID  *int64
}

// Response запись после переноса
type Response struct {
	AppointmentID   int64
	Status          string
	ResourceID      *int64
	ScheduledAt     time.Time
	EndsAt          time.Time
	DurationMinutes int
	ServiceType     string
	UpdatedAt       time.Time
}
