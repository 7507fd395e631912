package reschedule_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	reschedule "github.com/m04kA/SMC-ClinicService/internal/usecase/reschedule_appointment"
)

const (
	msgUnauthorized        = "требуется авторизация"
	msgInvalidID           = "некорректный ID записи"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateTime     = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput        = "некорректные данные переноса"
	msgAppointmentNotFound = "запись не найдена"
	msgForbidden           = "нет прав на перенос записи"
	msgNotReschedulable    = "запись в этом статусе нельзя перенести"
	msgUnknownServiceType  = "неизвестный тип услуги"
	msgResourceNotFound    = "ресурс не найден или не работает"
)

type Handler struct {
	useCase  RescheduleUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase RescheduleUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle PUT /api/v1/appointments/{id}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var body RescheduleBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /appointments/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := body.ToUseCaseRequest(actor, id)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, reschedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, reschedule.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, reschedule.ErrForbidden):
			h.logger.Warn("PUT /appointments/{id}/schedule - Forbidden: staff=%s, appointment=%d", actor.StaffID, id)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reschedule.ErrNotReschedulable):
			handlers.RespondConflict(w, msgNotReschedulable)

		case errors.Is(err, reschedule.ErrUnknownServiceType):
			handlers.RespondDenied(w, http.StatusBadRequest, msgUnknownServiceType, "unknown_service_type", nil)

		case errors.Is(err, reschedule.ErrResourceNotFound):
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, reschedule.ErrScheduleDenied):
			h.logger.Warn("PUT /appointments/{id}/schedule - Denied: appointment=%d, error=%v", id, err)
			handlers.RespondScheduleDenied(w, err, h.location)

		default:
			h.logger.Error("PUT /appointments/{id}/schedule - Failed: appointment=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id}/schedule - appointment=%d moved to %s %s",
		id, body.Date, body.StartTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.location))
}
