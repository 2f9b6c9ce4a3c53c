package get_city_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/availability"
)

const (
	msgInvalidCityID = "некорректный ID города"
	msgInvalidQuery  = "некорректные параметры фильтра"
	msgCityNotFound  = "город не найден"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/cities/{cityId}/slots
// Query params: dateFrom, dateTo, minPrice, maxPrice, onlyFree, sort
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cityID, err := strconv.ParseInt(mux.Vars(r)["cityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /cities/{id}/slots - Invalid city ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCityID)
		return
	}

	req, err := ToServiceRequest(cityID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /cities/{id}/slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.ListForCity(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /cities/{id}/slots - Invalid filter: city_id=%d, error=%v", cityID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, availability.ErrCityNotFound):
			h.logger.Warn("GET /cities/{id}/slots - City not found: city_id=%d", cityID)
			handlers.RespondNotFound(w, msgCityNotFound)

		default:
			h.logger.Error("GET /cities/{id}/slots - Failed to list slots: city_id=%d, error=%v", cityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /cities/{id}/slots - Slots retrieved successfully: city_id=%d, slots_count=%d",
		cityID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
