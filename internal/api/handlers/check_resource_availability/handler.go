package check_resource_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	check "github.com/m04kA/SMC-ClinicService/internal/usecase/check_resource_availability"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

const (
	msgInvalidID        = "некорректный ID ресурса"
	msgInvalidParams    = "ожидаются параметры date=YYYY-MM-DD, time=HH:MM и service"
	msgResourceNotFound = "ресурс не найден"
	msgResourceInactive = "ресурс выведен из работы"
)

type Handler struct {
	checker  AvailabilityChecker
	location *time.Location
	logger   Logger
}

func NewHandler(checker AvailabilityChecker, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		checker:  checker,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/resources/{id}/availability-check?date=&time=&service=&exclude=
// Отказ детектора не ошибка: 200 с allowed=false и причиной
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	req, err := parseRequest(r, resourceID)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/availability-check - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	decision, err := h.checker.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, check.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)
		case errors.Is(err, check.ErrResourceNotFound):
			handlers.RespondNotFound(w, msgResourceNotFound)
		case errors.Is(err, check.ErrResourceInactive):
			handlers.RespondConflict(w, msgResourceInactive)
		default:
			h.logger.Error("GET /resources/{id}/availability-check - Check failed: resource=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDecision(decision, h.location))
}

func parseRequest(r *http.Request, resourceID int64) (*check.Request, error) {
	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(r.URL.Query().Get("time"))
	if err != nil {
		return nil, err
	}
	exclude, err := handlers.QueryID(r, "exclude")
	if err != nil {
		return nil, err
	}

	return &check.Request{
		ResourceID:           resourceID,
		Date:                 date,
		StartTime:            startTime,
		ServiceType:          r.URL.Query().Get("service"),
		ExcludeAppointmentID: exclude,
	}, nil
}
