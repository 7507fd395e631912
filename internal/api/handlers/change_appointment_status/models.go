package change_appointment_status

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	changeStatus "github.com/m04kA/SMC-ClinicService/internal/usecase/change_appointment_status"
)

// ChangeStatusBody действие над записью: schedule, reject, complete, cancel, revert
type ChangeStatusBody struct {
	Action     string `json:"action"`
	ResourceID *int64 `json:"resourceId,omitempty"` // только для schedule
}

// ChangeStatusResponse запись после перехода
type ChangeStatusResponse struct {
	AppointmentID  int64  `json:"appointmentId"`
	PreviousStatus string `json:"previousStatus"`
	Status         string `json:"status"`
	ResourceID     *int64 `json:"resourceId,omitempty"`
	Date           string `json:"date"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	UpdatedAt      string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (b *ChangeStatusBody) ToUseCaseRequest(actor domain.Actor, appointmentID int64) *changeStatus.Request {
	return &changeStatus.Request{
		Actor:         actor,
		AppointmentID: appointmentID,
		Action:        domain.AppointmentAction(b.Action),
		ResourceID:    b.ResourceID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *changeStatus.Response, loc *time.Location) *ChangeStatusResponse {
	start := resp.ScheduledAt.In(loc)
	return &ChangeStatusResponse{
		AppointmentID:  resp.AppointmentID,
		PreviousStatus: resp.PreviousStatus,
		Status:         resp.Status,
		ResourceID:     resp.ResourceID,
		Date:           start.Format(domain.DateFormat),
		StartTime:      start.Format(domain.TimeFormat),
		EndTime:        resp.EndsAt.In(loc).Format(domain.TimeFormat),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
