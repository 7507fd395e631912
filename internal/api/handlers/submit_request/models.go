package submit_request

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	submitRequest "github.com/m04kA/SMC-ClinicService/internal/usecase/submit_request"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// SubmitRequestBody публичная форма записи
type SubmitRequestBody struct {
	ContactName  string  `json:"contactName"`
	ContactPhone *string `json:"contactPhone,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	PetName      string  `json:"petName"`
	Reason       string  `json:"reason"`
	Date         string  `json:"date"`      // "2025-06-10"
	StartTime    string  `json:"startTime"` // "10:00"
}

// SubmitRequestResponse ответ заявителю, reference нужен для проверки статуса
type SubmitRequestResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (b *SubmitRequestBody) ToUseCaseRequest() (*submitRequest.Request, error) {
	date, err := time.Parse(domain.DateFormat, b.Date)
	if err != nil {
		return nil, errInvalidDate
	}
	startTime, err := types.NewTimeStringFromString(b.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &submitRequest.Request{
		ContactName:  b.ContactName,
		ContactPhone: b.ContactPhone,
		ContactEmail: b.ContactEmail,
		PetName:      b.PetName,
		Reason:       b.Reason,
		Date:         date,
		StartTime:    startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitRequest.Response, loc *time.Location) *SubmitRequestResponse {
	at := resp.RequestedAt.In(loc)
	return &SubmitRequestResponse{
		ID:        resp.ID,
		Reference: resp.Reference,
		Status:    resp.Status,
		Date:      at.Format(domain.DateFormat),
		StartTime: at.Format(domain.TimeFormat),
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
