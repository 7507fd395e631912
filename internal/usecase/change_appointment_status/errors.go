package change_appointment_status

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("change_appointment_status: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("change_appointment_status: appointment not found")

	// ErrForbidden возвращается, когда сотрудник не может изменять запись
	ErrForbidden = errors.New("change_appointment_status: actor is not allowed to change this appointment")

	// ErrInvalidTransition возвращается, когда действие не определено для текущего статуса
	ErrInvalidTransition = errors.New("change_appointment_status: invalid status transition")

	// ErrResourceRequired возвращается при назначении без ресурса
	ErrResourceRequired = errors.New("change_appointment_status: resource is required to schedule")

	// ErrResourceNotFound возвращается, когда ресурс не найден или неактивен
	ErrResourceNotFound = errors.New("change_appointment_status: resource not found")

	// ErrScheduleDenied возвращается, когда детектор пересечений отказал
	ErrScheduleDenied = errors.New("change_appointment_status: resource cannot take this appointment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("change_appointment_status: internal error")
)
