package promote_request

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("promote_request: invalid input data")

	// ErrForbidden возвращается, когда сотрудник не может назначать записи на ресурс
	ErrForbidden = errors.New("promote_request: actor is not allowed to promote to this resource")

	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("promote_request: request not found")

	// ErrRequestNotPending возвращается, когда заявка уже подтверждена или отменена
	ErrRequestNotPending = errors.New("promote_request: request is not pending")

	// ErrResourceNotFound возвращается, когда ресурс не найден или неактивен
	ErrResourceNotFound = errors.New("promote_request: resource not found")

	// ErrClientNotFound возвращается, когда выбранный клиент не найден
	ErrClientNotFound = errors.New("promote_request: client not found")

	// ErrPetNotFound возвращается, когда выбранный питомец не найден
	ErrPetNotFound = errors.New("promote_request: pet not found")

	// ErrPetNotOwned возвращается, когда питомец принадлежит другому клиенту
	ErrPetNotOwned = errors.New("promote_request: pet does not belong to the selected client")

	// ErrScheduleDenied возвращается, когда детектор пересечений отказал
	// Цепочка ошибки содержит конкретную причину из check_resource_availability
	ErrScheduleDenied = errors.New("promote_request: resource cannot take this appointment")

	// ErrPartialFailure возвращается, когда запись создана, а заявку подтвердить не удалось
	// Запись удалена компенсирующим действием, заявка осталась в pending
	ErrPartialFailure = errors.New("promote_request: request was not confirmed, appointment rolled back")

	// ErrCompensationFailed возвращается вместе с ErrPartialFailure, если удалить запись не удалось
	// Требуется ручная сверка
	ErrCompensationFailed = errors.New("promote_request: compensating delete failed, manual reconciliation required")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("promote_request: internal error")
)
