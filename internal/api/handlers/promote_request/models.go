package promote_request

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	promoteRequest "github.com/m04kA/SMC-ClinicService/internal/usecase/promote_request"
)

// PromoteRequestBody выбор сотрудника при подтверждении заявки
type PromoteRequestBody struct {
	ResourceID  int64  `json:"resourceId"`
	ServiceType string `json:"serviceType"`
	ClientID    *int64 `json:"clientId,omitempty"`
	PetID       *int64 `json:"petId,omitempty"`
}

// PromoteRequestResponse подтвержденная заявка и созданная запись
type PromoteRequestResponse struct {
	RequestID       int64  `json:"requestId"`
	RequestStatus   string `json:"requestStatus"`
	AppointmentID   int64  `json:"appointmentId"`
	ResourceID      int64  `json:"resourceId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	ServiceType     string `json:"serviceType"`
	Reused          bool   `json:"reused"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (b *PromoteRequestBody) ToUseCaseRequest(actor domain.Actor, requestID int64) *promoteRequest.Request {
	return &promoteRequest.Request{
		Actor:       actor,
		RequestID:   requestID,
		ResourceID:  b.ResourceID,
		ServiceType: b.ServiceType,
		ClientID:    b.ClientID,
		PetID:       b.PetID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *promoteRequest.Response, loc *time.Location) *PromoteRequestResponse {
	start := resp.ScheduledAt.In(loc)
	return &PromoteRequestResponse{
		RequestID:       resp.RequestID,
		RequestStatus:   resp.RequestStatus,
		AppointmentID:   resp.AppointmentID,
		ResourceID:      resp.ResourceID,
		Date:            start.Format(domain.DateFormat),
		StartTime:       start.Format(domain.TimeFormat),
		EndTime:         resp.EndsAt.In(loc).Format(domain.TimeFormat),
		DurationMinutes: resp.DurationMinutes,
		ServiceType:     resp.ServiceType,
		Reused:          resp.Reused,
	}
}
