package list_requests

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/service/requests"
	"github.com/m04kA/SMC-ClinicService/internal/service/requests/models"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput = "некорректный фильтр"
	msgForbidden    = "нет доступа к заявкам"
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

// Handle GET /api/v1/requests?status=pending&date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /requests - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &models.ListRequestsRequest{
		Status: handlers.QueryString(r, "status"),
		Date:   date,
	}

	list, err := h.service.List(r.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("GET /requests - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, requests.ErrAccessDenied):
			h.logger.Warn("GET /requests - Access denied: staff=%s", actor.StaffID)
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("GET /requests - Failed to list requests: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /requests - staff=%s, count=%d", actor.StaffID, len(list.Requests))
	handlers.RespondJSON(w, http.StatusOK, list)
}
