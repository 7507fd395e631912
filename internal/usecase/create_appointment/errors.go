package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrForbidden возвращается, когда сотрудник не может назначить ресурс
	ErrForbidden = errors.New("create_appointment: actor is not allowed to create this appointment")

	// ErrUnknownServiceType возвращается, когда у услуги нет длительности в справочнике
	ErrUnknownServiceType = errors.New("create_appointment: unknown service type")

	// ErrResourceNotFound возвращается, когда ресурс не найден или неактивен
	ErrResourceNotFound = errors.New("create_appointment: resource not found")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("create_appointment: client not found")

	// ErrPetNotFound возвращается, когда питомец не найден
	ErrPetNotFound = errors.New("create_appointment: pet not found")

	// ErrPetNotOwned возвращается, когда питомец принадлежит другому клиенту
	ErrPetNotOwned = errors.New("create_appointment: pet does not belong to the client")

	// ErrScheduleDenied возвращается, когда детектор пересечений отказал
	ErrScheduleDenied = errors.New("create_appointment: resource cannot take this appointment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
