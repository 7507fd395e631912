package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/service/appointments"
	"github.com/m04kA/SMC-ClinicService/internal/service/appointments/models"
)

const (
	msgUnauthorized  = "требуется авторизация"
	msgInvalidParams = "некорректные параметры фильтра"
	msgForbidden     = "нет доступа к календарю"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments?date=YYYY-MM-DD&resourceId=1&status=scheduled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /appointments - %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	resourceID, err := handlers.QueryID(r, "resourceId")
	if err != nil {
		h.logger.Warn("GET /appointments - %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	req := &models.ListAppointmentsRequest{
		Date:       date,
		ResourceID: resourceID,
		Status:     handlers.QueryString(r, "status"),
	}

	list, err := h.service.List(r.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
		case errors.Is(err, appointments.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("GET /appointments - Failed to list appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - staff=%s, count=%d", actor.StaffID, len(list.Appointments))
	handlers.RespondJSON(w, http.StatusOK, list)
}
