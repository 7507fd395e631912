package check_resource_availability

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_resource_availability: invalid input data")

	// ErrResourceNotFound возвращается, когда ресурс не существует
	ErrResourceNotFound = errors.New("check_resource_availability: resource not found")

	// ErrResourceInactive возвращается для выведенного из работы ресурса
	ErrResourceInactive = errors.New("check_resource_availability: resource is inactive")

	// ErrUnknownServiceType возвращается, когда у услуги нет длительности в справочнике
	ErrUnknownServiceType = errors.New("check_resource_availability: unknown service type")

	// ErrStartInPast возвращается, когда начало записи уже прошло
	ErrStartInPast = errors.New("check_resource_availability: start time is in the past")

	// ErrAfterClosing возвращается, когда запись заканчивается после закрытия клиники
	ErrAfterClosing = errors.New("check_resource_availability: appointment ends after closing time")

	// ErrResourceConflict возвращается, когда интервал пересекается с другой записью ресурса
	ErrResourceConflict = errors.New("check_resource_availability: resource is already booked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_resource_availability: internal error")
)

// ConflictError отказ из-за пересечения с существующей записью
// errors.Is(err, ErrResourceConflict) == true
type ConflictError struct {
	ResourceID    int64
	AppointmentID int64
	Start         time.Time
	End           time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: appointment id=%d occupies %s-%s",
		ErrResourceConflict, e.AppointmentID, e.Start.Format("15:04"), e.End.Format("15:04"))
}

func (e *ConflictError) Unwrap() error {
	return ErrResourceConflict
}

// IsDenial сообщает, что ошибка является отказом детектора, а не сбоем
func IsDenial(err error) bool {
	return errors.Is(err, ErrResourceConflict) ||
		errors.Is(err, ErrUnknownServiceType) ||
		errors.Is(err, ErrStartInPast) ||
		errors.Is(err, ErrAfterClosing)
}

// IsResourceUnavailable сообщает, что ресурс не найден или выведен из работы
func IsResourceUnavailable(err error) bool {
	return errors.Is(err, ErrResourceNotFound) || errors.Is(err, ErrResourceInactive)
}
