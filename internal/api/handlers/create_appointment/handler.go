package create_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-ClinicService/internal/usecase/create_appointment"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные данные записи"
	msgForbidden          = "нет прав на запись к этому специалисту"
	msgUnknownServiceType = "неизвестный тип услуги"
	msgResourceNotFound   = "ресурс не найден или не работает"
	msgClientNotFound     = "клиент не найден"
	msgPetNotFound        = "питомец не найден"
	msgPetNotOwned        = "питомец принадлежит другому клиенту"
)

type Handler struct {
	useCase  CreateAppointmentUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateAppointmentUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var body CreateAppointmentBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := body.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrForbidden):
			h.logger.Warn("POST /appointments - Forbidden: staff=%s", actor.StaffID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createAppointment.ErrUnknownServiceType):
			handlers.RespondDenied(w, http.StatusBadRequest, msgUnknownServiceType, "unknown_service_type", nil)

		case errors.Is(err, createAppointment.ErrResourceNotFound):
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createAppointment.ErrClientNotFound):
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createAppointment.ErrPetNotFound):
			handlers.RespondNotFound(w, msgPetNotFound)

		case errors.Is(err, createAppointment.ErrPetNotOwned):
			handlers.RespondBadRequest(w, msgPetNotOwned)

		case errors.Is(err, createAppointment.ErrScheduleDenied):
			h.logger.Warn("POST /appointments - Denied: %v", err)
			handlers.RespondScheduleDenied(w, err, h.location)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%d, status=%s, staff=%s", result.ID, result.Status, actor.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.location))
}
