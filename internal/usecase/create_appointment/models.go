package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Request запись, созданная сотрудником напрямую
// Владелец: ClientID (+ PetID) или GuestOwner (+ GuestPet).
// Без ResourceID запись создается в статусе pending
type Request struct {
	Actor domain.Actor

	ClientID   *int64
	PetID      *int64
	GuestOwner *string
	GuestPet   *string

	ResourceID  *int64
	Date        time.Time
	StartTime   types.TimeString
	ServiceType string
	Reason      string
}

// Response созданная запись
type Response struct {
	ID              int64
	Status          string
	ResourceID      *int64
	ScheduledAt     time.Time
	EndsAt          time.Time
	DurationMinutes int
	ServiceType     string
	CreatedAt       time.Time
}
