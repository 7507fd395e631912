package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrAvailabilityUnknown возвращается, когда не удалось прочитать заявки на дату
	// Отказ хранилища никогда не трактуется как "заявок нет"
	ErrAvailabilityUnknown = errors.New("get_available_slots: availability unknown")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
