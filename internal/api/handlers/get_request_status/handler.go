package get_request_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/service/requests"
)

const (
	msgInvalidReference = "некорректный номер заявки"
	msgRequestNotFound  = "заявка не найдена"
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

// Handle GET /api/v1/requests/by-reference/{reference}
// Публичный статус заявки: без контактов заявителя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]

	status, err := h.service.GetByReference(r.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("GET /requests/by-reference - Invalid reference: %q", reference)
			handlers.RespondBadRequest(w, msgInvalidReference)
		case errors.Is(err, requests.ErrRequestNotFound):
			h.logger.Warn("GET /requests/by-reference - Request not found: %s", reference)
			handlers.RespondNotFound(w, msgRequestNotFound)
		default:
			h.logger.Error("GET /requests/by-reference - Failed to get request: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, status)
}
