package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Reason объясняет, почему список слотов пуст
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonDayNotEligible  Reason = "day_not_eligible"
	ReasonDailyCapReached Reason = "daily_cap_reached"
	ReasonDateInPast      Reason = "date_in_past"
	ReasonNoFreeSlots     Reason = "no_free_slots"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date time.Time // календарная дата, время суток игнорируется
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date          time.Time
	Slots         []types.TimeString // упорядочены по возрастанию
	Reason        Reason             // пусто, если Slots не пуст
	RequestsCount int                // заявок на дату
	DailyLimit    int
}

// IsOpen возвращает true, если на дату есть хотя бы один слот
func (r *Response) IsOpen() bool {
	return len(r.Slots) > 0
}

// Offers проверяет, входит ли start в список доступных слотов
func (r *Response) Offers(start types.TimeString) bool {
	for _, s := range r.Slots {
		if s == start {
			return true
		}
	}
	return false
}
