package list_services

import (
	"net/http"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
)

type Handler struct {
	catalog Catalog
	logger  Logger
}

func NewHandler(catalog Catalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.ListServices(r.Context())
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := ServicesResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		response.Services = append(response.Services, FromDomainService(s))
	}

	h.logger.Info("GET /services - Services listed: count=%d", len(services))
	handlers.RespondJSON(w, http.StatusOK, response)
}
