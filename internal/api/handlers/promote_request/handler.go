package promote_request

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	promoteRequest "github.com/m04kA/SMC-ClinicService/internal/usecase/promote_request"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidID          = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры подтверждения"
	msgForbidden          = "нет прав на запись к этому специалисту"
	msgRequestNotFound    = "заявка не найдена"
	msgRequestNotPending  = "заявка уже обработана"
	msgResourceNotFound   = "ресурс не найден или не работает"
	msgClientNotFound     = "клиент не найден"
	msgPetNotFound        = "питомец не найден"
	msgPetNotOwned        = "питомец принадлежит другому клиенту"
	msgPartialFailure     = "заявка изменилась во время подтверждения, запись отменена"
	msgCompensationFailed = "запись создана, но заявка не подтверждена: требуется ручная сверка"
)

type Handler struct {
	useCase  PromoteRequestUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase PromoteRequestUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/requests/{id}/promote
// Повторный вызов для уже подтвержденной заявки возвращает ту же запись (reused=true)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	requestID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("POST /requests/{id}/promote - %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var body PromoteRequestBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /requests/{id}/promote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), body.ToUseCaseRequest(actor, requestID))
	if err != nil {
		switch {
		case errors.Is(err, promoteRequest.ErrInvalidInput):
			h.logger.Warn("POST /requests/{id}/promote - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, promoteRequest.ErrForbidden):
			h.logger.Warn("POST /requests/{id}/promote - Forbidden: staff=%s, resource=%d", actor.StaffID, body.ResourceID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, promoteRequest.ErrRequestNotFound):
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, promoteRequest.ErrRequestNotPending):
			handlers.RespondConflict(w, msgRequestNotPending)

		case errors.Is(err, promoteRequest.ErrResourceNotFound):
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, promoteRequest.ErrClientNotFound):
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, promoteRequest.ErrPetNotFound):
			handlers.RespondNotFound(w, msgPetNotFound)

		case errors.Is(err, promoteRequest.ErrPetNotOwned):
			handlers.RespondBadRequest(w, msgPetNotOwned)

		case errors.Is(err, promoteRequest.ErrScheduleDenied):
			h.logger.Warn("POST /requests/{id}/promote - Denied: request=%d, error=%v", requestID, err)
			handlers.RespondScheduleDenied(w, err, h.location)

		case errors.Is(err, promoteRequest.ErrCompensationFailed):
			h.logger.Error("POST /requests/{id}/promote - RECONCILIATION REQUIRED: request=%d, error=%v", requestID, err)
			handlers.RespondDenied(w, http.StatusInternalServerError, msgCompensationFailed, "reconciliation_required", nil)

		case errors.Is(err, promoteRequest.ErrPartialFailure):
			h.logger.Warn("POST /requests/{id}/promote - Request changed concurrently: request=%d, error=%v", requestID, err)
			handlers.RespondDenied(w, http.StatusConflict, msgPartialFailure, "request_changed", nil)

		default:
			h.logger.Error("POST /requests/{id}/promote - Failed to promote request=%d: %v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests/{id}/promote - request=%d, appointment=%d, reused=%t", requestID, result.AppointmentID, result.Reused)

	status := http.StatusCreated
	if result.Reused {
		status = http.StatusOK
	}
	handlers.RespondJSON(w, status, FromUseCaseResponse(result, h.location))
}
