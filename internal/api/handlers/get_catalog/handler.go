package get_catalog

import (
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
)

type Handler struct {
	service         CatalogService
	includeInactive bool
	logger          Logger
}

// NewHandler создает обработчик справочника
// includeInactive включает выведенные из работы ресурсы (только для сотрудников)
func NewHandler(service CatalogService, includeInactive bool, logger Logger) *Handler {
	return &Handler{
		service:         service,
		includeInactive: includeInactive,
		logger:          logger,
	}
}

// Handle GET /api/v1/catalog и GET /api/v1/resources
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.service.Get(r.Context(), h.includeInactive)
	if err != nil {
		h.logger.Error("GET %s - Failed to get catalog: %v", r.URL.Path, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, catalog)
}
