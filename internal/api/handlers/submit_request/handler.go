package submit_request

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	submitRequest "github.com/m04kA/SMC-ClinicService/internal/usecase/submit_request"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime         = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput        = "некорректные данные заявки"
	msgDayNotEligible      = "клиника не принимает заявки на этот день"
	msgDateInPast          = "дата уже прошла"
	msgDailyCapReached     = "лимит заявок на эту дату исчерпан"
	msgSlotNotAvailable    = "выбранное время недоступно"
	msgAvailabilityUnknown = "не удалось определить доступность, попробуйте позже"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

type Handler struct {
	useCase  SubmitRequestUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase SubmitRequestUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var body SubmitRequestBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := body.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /requests - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitRequest.ErrInvalidInput):
			h.logger.Warn("POST /requests - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, submitRequest.ErrDayNotEligible):
			h.logger.Warn("POST /requests - Day not eligible: date=%s", body.Date)
			handlers.RespondDenied(w, http.StatusBadRequest, msgDayNotEligible, "day_not_eligible", nil)

		case errors.Is(err, submitRequest.ErrDateInPast):
			h.logger.Warn("POST /requests - Date in past: date=%s", body.Date)
			handlers.RespondDenied(w, http.StatusBadRequest, msgDateInPast, "date_in_past", nil)

		case errors.Is(err, submitRequest.ErrDailyCapReached):
			h.logger.Warn("POST /requests - Daily cap reached: date=%s", body.Date)
			handlers.RespondDenied(w, http.StatusConflict, msgDailyCapReached, "daily_cap_reached", nil)

		case errors.Is(err, submitRequest.ErrSlotNotAvailable):
			h.logger.Warn("POST /requests - Slot not available: date=%s, time=%s", body.Date, body.StartTime)
			handlers.RespondDenied(w, http.StatusConflict, msgSlotNotAvailable, "slot_not_available", nil)

		case errors.Is(err, submitRequest.ErrAvailabilityUnknown):
			h.logger.Error("POST /requests - Availability unknown: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgAvailabilityUnknown)

		default:
			h.logger.Error("POST /requests - Failed to submit request: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests - Request submitted: id=%d, date=%s, time=%s", result.ID, body.Date, body.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.location))
}
