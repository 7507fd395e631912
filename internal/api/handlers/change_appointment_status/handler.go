package change_appointment_status

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	changeStatus "github.com/m04kA/SMC-ClinicService/internal/usecase/change_appointment_status"
)

const (
	msgUnauthorized        = "требуется авторизация"
	msgInvalidID           = "некорректный ID записи"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректное действие"
	msgAppointmentNotFound = "запись не найдена"
	msgForbidden           = "нет прав на изменение записи"
	msgInvalidTransition   = "переход недоступен из текущего статуса"
	msgResourceRequired    = "для подтверждения нужно выбрать ресурс"
	msgResourceNotFound    = "ресурс не найден или не работает"
)

type Handler struct {
	useCase  ChangeStatusUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase ChangeStatusUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle PATCH /api/v1/appointments/{id}/status
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

	var body ChangeStatusBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), body.ToUseCaseRequest(actor, id))
	if err != nil {
		switch {
		case errors.Is(err, changeStatus.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, changeStatus.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, changeStatus.ErrForbidden):
			h.logger.Warn("PATCH /appointments/{id}/status - Forbidden: staff=%s, appointment=%d", actor.StaffID, id)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, changeStatus.ErrInvalidTransition):
			handlers.RespondDenied(w, http.StatusConflict, msgInvalidTransition, "invalid_transition", nil)

		case errors.Is(err, changeStatus.ErrResourceRequired):
			handlers.RespondBadRequest(w, msgResourceRequired)

		case errors.Is(err, changeStatus.ErrResourceNotFound):
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, changeStatus.ErrScheduleDenied):
			h.logger.Warn("PATCH /appointments/{id}/status - Denied: appointment=%d, error=%v", id, err)
			handlers.RespondScheduleDenied(w, err, h.location)

		default:
			h.logger.Error("PATCH /appointments/{id}/status - Failed: appointment=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - appointment=%d, %s -> %s, staff=%s",
		id, result.PreviousStatus, result.Status, actor.StaffID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.location))
}
