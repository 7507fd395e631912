package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	createAppointment "github.com/m04kA/SMC-ClinicService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// CreateAppointmentBody запись, созданная сотрудником
// Владелец: clientId (+ petId) либо guestOwner (+ guestPet)
type CreateAppointmentBody struct {
	ClientID    *int64  `json:"clientId,omitempty"`
	PetID       *int64  `json:"petId,omitempty"`
	GuestOwner  *string `json:"guestOwner,omitempty"`
	GuestPet    *string `json:"guestPet,omitempty"`
	ResourceID  *int64  `json:"resourceId,omitempty"`
	Date        string  `json:"date"`
	StartTime   string  `json:"startTime"`
	ServiceType string  `json:"serviceType"`
	Reason      string  `json:"reason"`
}

// AppointmentResponse созданная запись
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	Status          string `json:"status"`
	ResourceID      *int64 `json:"resourceId,omitempty"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	ServiceType     string `json:"serviceType"`
	CreatedAt       string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (b *CreateAppointmentBody) ToUseCaseRequest(actor domain.Actor) (*createAppointment.Request, error) {
	date, err := handlers.ParseDate(b.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(b.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		Actor:       actor,
		ClientID:    b.ClientID,
		PetID:       b.PetID,
		GuestOwner:  b.GuestOwner,
		GuestPet:    b.GuestPet,
		ResourceID:  b.ResourceID,
		Date:        date,
		StartTime:   startTime,
		ServiceType: b.ServiceType,
		Reason:      b.Reason,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response, loc *time.Location) *AppointmentResponse {
	start := resp.ScheduledAt.In(loc)
	return &AppointmentResponse{
		ID:              resp.ID,
		Status:          resp.Status,
		ResourceID:      resp.ResourceID,
		Date:            start.Format(domain.DateFormat),
		StartTime:       start.Format(domain.TimeFormat),
		EndTime:         resp.EndsAt.In(loc).Format(domain.TimeFormat),
		DurationMinutes: resp.DurationMinutes,
		ServiceType:     resp.ServiceType,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
