package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ClinicService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date          string   `json:"date"`
	Slots         []string `json:"slots"`
	Reason        string   `json:"reason,omitempty"` // day_not_eligible, daily_cap_reached, date_in_past, no_free_slots
	RequestsCount int      `json:"requestsCount"`
	DailyLimit    int      `json:"dailyLimit"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:          resp.Date.Format(domain.DateFormat),
		Slots:         slots,
		Reason:        string(resp.Reason),
		RequestsCount: resp.RequestsCount,
		DailyLimit:    resp.DailyLimit,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}
	return &getAvailableSlots.Request{Date: date}, nil
}
