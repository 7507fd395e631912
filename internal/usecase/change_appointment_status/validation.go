package change_appointment_status

import (
	"fmt"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if !req.Action.IsValid() {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}
	if req.ResourceID != nil {
		if req.Action != domain.ActionSchedule {
			return fmt.Errorf("%w: resource can only be set by %s", ErrInvalidInput, domain.ActionSchedule)
		}
		if *req.ResourceID <= 0 {
			return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
		}
	}
	return nil
}
