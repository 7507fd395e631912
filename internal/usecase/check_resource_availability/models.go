package check_resource_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Code машиночитаемая причина отказа
type Code string

const (
	CodeNone               Code = ""
	CodeUnknownServiceType Code = "unknown_service_type"
	CodeInPast             Code = "in_past"
	CodeAfterClosing       Code = "after_closing"
	CodeResourceOverlap    Code = "resource_overlap"
)

// Request модель запроса на проверку занятости ресурса
type Request struct {
	ResourceID  int64
	Date        time.Time // календарная дата
	StartTime   types.TimeString
	ServiceType string

	// ExcludeAppointmentID исключает запись из проверки (перенос самой себя)
	ExcludeAppointmentID *int64
}

// Conflict существующая запись, с которой пересекается интервал
type Conflict struct {
	AppointmentID int64
	Start         time.Time
	End           time.Time
}

// Decision результат проверки
// Start/End заполнены, если длительность услуги известна
type Decision struct {
	Allowed         bool
	Code            Code
	Reason          string
	ResourceID      int64
	Start           time.Time
	End             time.Time
	DurationMinutes int
	Conflict        *Conflict
}

func allow(resourceID int64, start, end time.Time) *Decision {
	return &Decision{
		Allowed:         true,
		ResourceID:      resourceID,
		Start:           start,
		End:             end,
		DurationMinutes: int(end.Sub(start) / time.Minute),
	}
}

func deny(resourceID int64, code Code, reason string) *Decision {
	return &Decision{ResourceID: resourceID, Code: code, Reason: reason}
}

// Err возвращает ошибку, соответствующую отказу, или nil для разрешения
func (d *Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Code {
	case CodeResourceOverlap:
		if d.Conflict != nil {
			return &ConflictError{
				ResourceID:    d.ResourceID,
				AppointmentID: d.Conflict.AppointmentID,
				Start:         d.Conflict.Start,
				End:           d.Conflict.End,
			}
		}
		return fmt.Errorf("%w: %s", ErrResourceConflict, d.Reason)
	case CodeUnknownServiceType:
		return fmt.Errorf("%w: %s", ErrUnknownServiceType, d.Reason)
	case CodeInPast:
		return fmt.Errorf("%w: %s", ErrStartInPast, d.Reason)
	case CodeAfterClosing:
		return fmt.Errorf("%w: %s", ErrAfterClosing, d.Reason)
	default:
		return fmt.Errorf("%w: denied: %s", ErrInternal, d.Reason)
	}
}
