package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListAppointmentsRequest фильтр списка записей
type ListAppointmentsRequest struct {
	Date       *time.Time `json:"date,omitempty"`       // календарная дата в часовом поясе клиники
	ResourceID *int64     `json:"resourceId,omitempty"` // календарь одного ресурса
	Status     *string    `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter(settings domain.ScheduleSettings) (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{ResourceID: r.ResourceID}

	if r.Date != nil {
		from, to := settings.DayBounds(*r.Date)
		filter.From, filter.To = &from, &to
	}

	if r.Status != nil {
		status := domain.AppointmentStatus(*r.Status)
		if !status.IsValid() {
			return filter, ErrInvalidStatus
		}
		filter.Statuses = []domain.AppointmentStatus{status}
	}

	return filter, nil
}

// Response модели

// AppointmentResponse данные записи
type AppointmentResponse struct {
	ID         int64   `json:"id"`
	ClientID   *int64  `json:"clientId,omitempty"`
	PetID      *int64  `json:"petId,omitempty"`
	GuestOwner *string `json:"guestOwner,omitempty"`
	GuestPet   *string `json:"guestPet,omitempty"`
	ResourceID *int64  `json:"resourceId,omitempty"`

	Date            string `json:"date"`      // "2025-06-10"
	StartTime       string `json:"startTime"` // "10:00"
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	ServiceType     string `json:"serviceType"`
	Reason          string `json:"reason,omitempty"`
	Status          string `json:"status"`

	SourceRequestID *int64 `json:"sourceRequestId,omitempty"`
	CreatedBy       string `json:"createdBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO, время в часовом поясе loc
func FromDomainAppointment(a *domain.Appointment, loc *time.Location) *AppointmentResponse {
	if a == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	start := a.ScheduledAt.In(loc)
	return &AppointmentResponse{
		ID:              a.ID,
		ClientID:        a.ClientID,
		PetID:           a.PetID,
		GuestOwner:      a.GuestOwner,
		GuestPet:        a.GuestPet,
		ResourceID:      a.ResourceID,
		Date:            start.Format(domain.DateFormat),
		StartTime:       start.Format(domain.TimeFormat),
		EndTime:         a.EndsAt().In(loc).Format(domain.TimeFormat),
		DurationMinutes: a.DurationMinutes,
		ServiceType:     a.ServiceType,
		Reason:          a.Reason,
		Status:          string(a.Status),
		SourceRequestID: a.SourceRequestID,
		CreatedBy:       a.CreatedBy,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(list []*domain.Appointment, loc *time.Location) *AppointmentListResponse {
	resp := &AppointmentListResponse{Appointments: make([]AppointmentResponse, 0, len(list))}
	for _, a := range list {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a, loc))
	}
	return resp
}
