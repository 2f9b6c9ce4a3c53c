package get_field

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields"
)

const (
	msgInvalidFieldID = "некорректный ID поля"
	msgFieldNotFound  = "поле не найдено"
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

// Handle GET /api/v1/fields/{fieldId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldID, err := strconv.ParseInt(mux.Vars(r)["fieldId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /fields/{id} - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	field, err := h.service.GetByID(r.Context(), fieldID)
	if err != nil {
		switch {
		case errors.Is(err, fields.ErrFieldNotFound):
			h.logger.Warn("GET /fields/{id} - Field not found: field_id=%d", fieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		default:
			h.logger.Error("GET /fields/{id} - Failed to get field: field_id=%d, error=%v", fieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /fields/{id} - Field retrieved successfully: field_id=%d", fieldID)
	handlers.RespondJSON(w, http.StatusOK, field)
}
