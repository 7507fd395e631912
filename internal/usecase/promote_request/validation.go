package promote_request

import (
	"fmt"
	"strings"
)

// validateRequest валидирует выбор сотрудника целиком
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	if req.RequestID <= 0 {
		return fmt.Errorf("%w: requestID must be positive", ErrInvalidInput)
	}
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ServiceType) == "" {
		return fmt.Errorf("%w: service type is required", ErrInvalidInput)
	}
	if req.PetID != nil && req.ClientID == nil {
		return fmt.Errorf("%w: pet requires a client", ErrInvalidInput)
	}
	if req.ClientID != nil && *req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}
	if req.PetID != nil && *req.PetID <= 0 {
		return fmt.Errorf("%w: petID must be positive", ErrInvalidInput)
	}
	return nil
}
