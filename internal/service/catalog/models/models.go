package models

import (
	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// ResourceResponse ресурс клиники
type ResourceResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Active    bool   `json:"active"`
}

// ServiceTypeResponse услуга и ее длительность
type ServiceTypeResponse struct {
	Key             string `json:"key"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ScheduleResponse публичная сетка приема
type ScheduleResponse struct {
	Timezone          string `json:"timezone"`
	OpeningTime       string `json:"openingTime"`
	LastSlotStart     string `json:"lastSlotStart"`
	ClosingTime       string `json:"closingTime"`
	SlotStepMinutes   int    `json:"slotStepMinutes"`
	WeekdayFrom       int    `json:"weekdayFrom"` // 0 = воскресенье
	WeekdayTo         int    `json:"weekdayTo"`
	DailyRequestLimit int    `json:"dailyRequestLimit"`
}

// CatalogResponse справочники для форм записи
type CatalogResponse struct {
	Resources    []ResourceResponse    `json:"resources"`
	ServiceTypes []ServiceTypeResponse `json:"serviceTypes"`
	Schedule     ScheduleResponse      `json:"schedule"`
}

// FromDomainResources конвертирует ресурсы в DTO
func FromDomainResources(list []*domain.Resource) []ResourceResponse {
	resp := make([]ResourceResponse, 0, len(list))
	for _, r := range list {
		resp = append(resp, ResourceResponse{
			ID:        r.ID,
			Name:      r.Name,
			Specialty: r.Specialty,
			Active:    r.Active,
		})
	}
	return resp
}

// FromDomainServiceTypes конвертирует услуги в DTO
func FromDomainServiceTypes(list []*domain.ServiceType) []ServiceTypeResponse {
	resp := make([]ServiceTypeResponse, 0, len(list))
	for _, st := range list {
		resp = append(resp, ServiceTypeResponse{
			Key:             st.Key,
			Name:            st.Name,
			DurationMinutes: st.DurationMinutes,
		})
	}
	return resp
}

// FromScheduleSettings конвертирует настройки сетки в DTO
func FromScheduleSettings(s domain.ScheduleSettings) ScheduleResponse {
	timezone := domain.DefaultTimezone
	if s.Location != nil {
		timezone = s.Location.String()
	}
	return ScheduleResponse{
		Timezone:          timezone,
		OpeningTime:       s.OpeningTime.String(),
		LastSlotStart:     s.LastSlotStart.String(),
		ClosingTime:       s.ClosingTime.String(),
		SlotStepMinutes:   s.SlotStepMinutes,
		WeekdayFrom:       int(s.WeekdayFrom),
		WeekdayTo:         int(s.WeekdayTo),
		DailyRequestLimit: s.DailyRequestLimit,
	}
}
