package check_resource_availability

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	check "github.com/m04kA/SMC-ClinicService/internal/usecase/check_resource_availability"
)

// DecisionResponse ответ детектора пересечений
type DecisionResponse struct {
	Allowed         bool                      `json:"allowed"`
	Reason          string                    `json:"reason,omitempty"` // unknown_service_type, in_past, after_closing, resource_overlap
	Message         string                    `json:"message,omitempty"`
	ResourceID      int64                     `json:"resourceId"`
	Start           string                    `json:"start,omitempty"`
	End             string                    `json:"end,omitempty"`
	DurationMinutes int                       `json:"durationMinutes,omitempty"`
	Conflict        *handlers.ConflictDetails `json:"conflict,omitempty"`
}

// FromDecision конвертирует решение use case в HTTP response
func FromDecision(d *check.Decision, loc *time.Location) *DecisionResponse {
	resp := &DecisionResponse{
		Allowed:         d.Allowed,
		Reason:          string(d.Code),
		Message:         d.Reason,
		ResourceID:      d.ResourceID,
		DurationMinutes: d.DurationMinutes,
	}
	if !d.Start.IsZero() {
		resp.Start = d.Start.In(loc).Format(domain.DateTimeLayout)
		resp.End = d.End.In(loc).Format(domain.DateTimeLayout)
	}
	if d.Conflict != nil {
		resp.Conflict = &handlers.ConflictDetails{
			ResourceID:    d.ResourceID,
			AppointmentID: d.Conflict.AppointmentID,
			Start:         d.Conflict.Start.In(loc).Format(domain.DateTimeLayout),
			End:           d.Conflict.End.In(loc).Format(domain.DateTimeLayout),
		}
	}
	return resp
}
