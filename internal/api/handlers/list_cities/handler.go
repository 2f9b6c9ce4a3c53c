package list_cities

import (
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
)

type Handler struct {
	service FieldService
	logger  Logger
}

func NewHandler(service FieldService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/cities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cities, err := h.service.ListCities(r.Context())
	if err != nil {
		h.logger.Error("GET /cities - Failed to list cities: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /cities - Cities retrieved successfully: count=%d", len(cities.Cities))
	handlers.RespondJSON(w, http.StatusOK, cities)
}
