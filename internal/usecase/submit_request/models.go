package submit_request

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Request модель публичной заявки на прием
type Request struct {
	ContactName  string
	ContactPhone *string
	ContactEmail *string
	PetName      string
	Reason       string
	Date         time.Time // календарная дата
	StartTime    types.TimeString
}

// Response модель созданной заявки
type Response struct {
	ID          int64
	Reference   string
	Status      string
	RequestedAt time.Time
	CreatedAt   time.Time
}
