package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid request status")
)

// Request модели

// ListRequestsRequest фильтр списка заявок
type ListRequestsRequest struct {
	Status *string    `json:"status,omitempty"`
	Date   *time.Time `json:"date,omitempty"` // дата приема, не дата подачи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequestsRequest) ToDomainFilter(settings domain.ScheduleSettings) (domain.RequestsFilter, error) {
	var filter domain.RequestsFilter

	if r.Date != nil {
		from, to := settings.DayBounds(*r.Date)
		filter.From, filter.To = &from, &to
	}

	if r.Status != nil {
		status := domain.RequestStatus(*r.Status)
		if !status.IsValid() {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// RequestResponse заявка целиком, для сотрудников
type RequestResponse struct {
	ID            int64     `json:"id"`
	Reference     string    `json:"reference"`
	ContactName   string    `json:"contactName"`
	ContactPhone  *string   `json:"contactPhone,omitempty"`
	ContactEmail  *string   `json:"contactEmail,omitempty"`
	PetName       string    `json:"petName"`
	Reason        string    `json:"reason,omitempty"`
	Date          string    `json:"date"`
	StartTime     string    `json:"startTime"`
	Status        string    `json:"status"`
	AppointmentID *int64    `json:"appointmentId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// RequestListResponse список заявок
type RequestListResponse struct {
	Requests []RequestResponse `json:"requests"`
}

// PublicRequestStatus то, что видит заявитель по своей ссылке
// Контакты не возвращаются
type PublicRequestStatus struct {
	Reference string `json:"reference"`
	PetName   string `json:"petName"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Status    string `json:"status"`
}

// Методы конвертации

// FromDomainRequest конвертирует domain модель в DTO
func FromDomainRequest(r *domain.AppointmentRequest, loc *time.Location) *RequestResponse {
	if r == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	at := r.RequestedAt.In(loc)
	return &RequestResponse{
		ID:            r.ID,
		Reference:     r.Reference,
		ContactName:   r.ContactName,
		ContactPhone:  r.ContactPhone,
		ContactEmail:  r.ContactEmail,
		PetName:       r.PetName,
		Reason:        r.Reason,
		Date:          at.Format(domain.DateFormat),
		StartTime:     at.Format(domain.TimeFormat),
		Status:        string(r.Status),
		AppointmentID: r.AppointmentID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// FromDomainRequestList конвертирует список domain моделей в DTO
func FromDomainRequestList(list []*domain.AppointmentRequest, loc *time.Location) *RequestListResponse {
	resp := &RequestListResponse{Requests: make([]RequestResponse, 0, len(list))}
	for _, r := range list {
		resp.Requests = append(resp.Requests, *FromDomainRequest(r, loc))
	}
	return resp
}

// ToPublicStatus урезанное представление заявки для заявителя
func ToPublicStatus(r *domain.AppointmentRequest, loc *time.Location) *PublicRequestStatus {
	full := FromDomainRequest(r, loc)
	if full == nil {
		return nil
	}
	return &PublicRequestStatus{
		Reference: full.Reference,
		PetName:   full.PetName,
		Date:      full.Date,
		StartTime: full.StartTime,
		Status:    full.Status,
	}
}
