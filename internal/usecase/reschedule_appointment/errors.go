package reschedule_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrForbidden возвращается, когда сотрудник не может изменять запись
	ErrForbidden = errors.New("reschedule_appointment: actor is not allowed to change this appointment")

	// ErrNotReschedulable возвращается для записей вне статусов pending и scheduled
	ErrNotReschedulable = errors.New("reschedule_appointment: appointment cannot be rescheduled in its status")

	// ErrUnknownServiceType возвращается, когда у услуги нет длительности в справочнике
	ErrUnknownServiceType = errors.New("reschedule_appointment: unknown service type")

	// ErrResourceNotFound возвращается, когда ресурс не найден или неактивен
	ErrResourceNotFound = errors.New("reschedule_appointment: resource not found")

	// ErrScheduleDenied возвращается, когда детектор пересечений отказал
	ErrScheduleDenied = errors.New("reschedule_appointment: resource cannot take this appointment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
