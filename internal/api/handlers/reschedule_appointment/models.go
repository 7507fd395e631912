package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	reschedule "github.com/m04kA/SMC-ClinicService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// RescheduleBody новое время записи; пустые serviceType и resourceId не меняются
type RescheduleBody struct {
	Date        string  `json:"date"`
	StartTime   string  `json:"startTime"`
	ServiceType *string `json:"serviceType,omitempty"`
	ResourceID  *int64  `json:"resourceId,omitempty"`
}

// RescheduleResponse запись после переноса
type RescheduleResponse struct {
	AppointmentID   int64  `json:"appointmentId"`
	Status          string `json:"status"`
	ResourceID      *int64 `json:"resourceId,omitempty"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	ServiceType     string `json:"serviceType"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (b *RescheduleBody) ToUseCaseRequest(actor domain.Actor, appointmentID int64) (*reschedule.Request, error) {
	date, err := handlers.ParseDate(b.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(b.StartTime)
	if err != nil {
		return nil, err
	}

	return &reschedule.Request{
		Actor:         actor,
		AppointmentID: appointmentID,
		Date:          date,
		StartTime:     startTime,
		ServiceType:   b.ServiceType,
		ResourceID:    b.ResourceID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reschedule.Response, loc *time.Location) *RescheduleResponse {
	start := resp.ScheduledAt.In(loc)
	return &RescheduleResponse{
		AppointmentID:   resp.AppointmentID,
		Status:          resp.Status,
		ResourceID:      resp.ResourceID,
		Date:            start.Format(domain.DateFormat),
		StartTime:       start.Format(domain.TimeFormat),
		EndTime:         resp.EndsAt.In(loc).Format(domain.TimeFormat),
		DurationMinutes: resp.DurationMinutes,
		ServiceType:     resp.ServiceType,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
