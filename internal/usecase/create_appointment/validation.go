package create_appointment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// validateRequest валидирует и нормализует запрос целиком до любой записи
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	req.GuestOwner = trimOptional(req.GuestOwner)
	req.GuestPet = trimOptional(req.GuestPet)
	req.ServiceType = strings.TrimSpace(req.ServiceType)
	req.Reason = strings.TrimSpace(req.Reason)

	if req.ClientID == nil && req.GuestOwner == nil {
		return fmt.Errorf("%w: client or guest owner is required", ErrInvalidInput)
	}
	if req.ClientID != nil && req.GuestOwner != nil {
		return fmt.Errorf("%w: client and guest owner are mutually exclusive", ErrInvalidInput)
	}
	if req.ClientID != nil && *req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}
	if req.PetID != nil {
		if req.ClientID == nil {
			return fmt.Errorf("%w: pet requires a client", ErrInvalidInput)
		}
		if *req.PetID <= 0 {
			return fmt.Errorf("%w: petID must be positive", ErrInvalidInput)
		}
	}
	for name, value := range map[string]*string{"guest owner": req.GuestOwner, "guest pet": req.GuestPet} {
		if value != nil && utf8.RuneCountInString(*value) > domain.MaxNameLength {
			return fmt.Errorf("%w: %s is longer than %d characters", ErrInvalidInput, name, domain.MaxNameLength)
		}
	}
	if req.ResourceID != nil && *req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	if req.ServiceType == "" {
		return fmt.Errorf("%w: service type is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
