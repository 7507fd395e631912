package submit_request

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// validateRequest проверяет заявку целиком до любых обращений к хранилищу
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	req.ContactName = strings.TrimSpace(req.ContactName)
	req.PetName = strings.TrimSpace(req.PetName)
	req.Reason = strings.TrimSpace(req.Reason)

	if req.ContactName == "" {
		return fmt.Errorf("%w: contact name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.ContactName) > domain.MaxNameLength {
		return fmt.Errorf("%w: contact name is too long", ErrInvalidInput)
	}
	if req.PetName == "" {
		return fmt.Errorf("%w: pet name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.PetName) > domain.MaxNameLength {
		return fmt.Errorf("%w: pet name is too long", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	req.ContactPhone = trimOptional(req.ContactPhone)
	req.ContactEmail = trimOptional(req.ContactEmail)
	if req.ContactPhone == nil && req.ContactEmail == nil {
		return fmt.Errorf("%w: phone or email is required", ErrInvalidInput)
	}
	if req.ContactEmail != nil {
		if _, err := mail.ParseAddress(*req.ContactEmail); err != nil {
			return fmt.Errorf("%w: invalid email: %v", ErrInvalidInput, err)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
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
