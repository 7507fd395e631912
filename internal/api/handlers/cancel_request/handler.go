package cancel_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/service/requests"
)

const (
	msgUnauthorized    = "требуется авторизация"
	msgInvalidID       = "некорректный ID заявки"
	msgRequestNotFound = "заявка не найдена"
	msgCannotCancel    = "заявка уже обработана"
	msgForbidden       = "нет прав на отмену заявки"
)

type Handler struct {
	service RequestService
	logger  Logger
}

func NewHandler(service RequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/requests/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /requests/{id}/cancel - %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Cancel(r.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, requests.ErrRequestNotFound):
			handlers.RespondNotFound(w, msgRequestNotFound)
		case errors.Is(err, requests.ErrCannotCancel):
			h.logger.Warn("PATCH /requests/{id}/cancel - Not pending: id=%d", id)
			handlers.RespondConflict(w, msgCannotCancel)
		case errors.Is(err, requests.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, requests.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidID)
		default:
			h.logger.Error("PATCH /requests/{id}/cancel - Failed to cancel request id=%d: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /requests/{id}/cancel - Request cancelled: id=%d, staff=%s", id, actor.StaffID)
	w.WriteHeader(http.StatusNoContent)
}
