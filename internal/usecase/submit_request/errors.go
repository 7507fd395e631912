package submit_request

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_request: invalid input data")

	// ErrDayNotEligible возвращается для даты вне рабочих дней
	ErrDayNotEligible = errors.New("submit_request: clinic does not accept requests on this day")

	// ErrDateInPast возвращается для прошедшей даты
	ErrDateInPast = errors.New("submit_request: date is in the past")

	// ErrDailyCapReached возвращается, когда лимит заявок на дату исчерпан
	ErrDailyCapReached = errors.New("submit_request: daily request limit reached")

	// ErrSlotNotAvailable возвращается, когда выбранный слот уже занят или прошел
	ErrSlotNotAvailable = errors.New("submit_request: slot is not available")

	// ErrAvailabilityUnknown возвращается, когда доступность нельзя определить
	ErrAvailabilityUnknown = errors.New("submit_request: availability unknown")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_request: internal error")
)
