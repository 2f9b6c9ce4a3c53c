package update_field

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields/models"
)

const (
	msgInvalidFieldID     = "некорректный ID поля"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPrincipal   = "требуется авторизация"
	msgForbidden          = "доступ запрещен"
	msgFieldNotFound      = "поле не найдено"
	msgUnknownCity        = "город не найден"
	msgInvalidField       = "некорректные данные поля"
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

// Handle PUT /api/v1/fields/{fieldId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldID, err := strconv.ParseInt(mux.Vars(r)["fieldId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /fields/{id} - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("PUT /fields/{id} - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req models.UpdateFieldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /fields/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	field, err := h.service.Update(r.Context(), principal, fieldID, &req)
	if err != nil {
		switch {
		case errors.Is(err, fields.ErrFieldNotFound):
			h.logger.Warn("PUT /fields/{id} - Field not found: field_id=%d", fieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, fields.ErrAccessDenied):
			h.logger.Warn("PUT /fields/{id} - Access denied: field_id=%d, account=%s", fieldID, principal.AccountID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, fields.ErrCityNotFound):
			h.logger.Warn("PUT /fields/{id} - Unknown city: field_id=%d", fieldID)
			handlers.RespondBadRequest(w, msgUnknownCity)

		case errors.Is(err, fields.ErrInvalidInput):
			h.logger.Warn("PUT /fields/{id} - Invalid input: field_id=%d, error=%v", fieldID, err)
			handlers.RespondBadRequest(w, msgInvalidField)

		default:
			h.logger.Error("PUT /fields/{id} - Failed to update field: field_id=%d, error=%v", fieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /fields/{id} - Field updated successfully: field_id=%d", fieldID)
	handlers.RespondJSON(w, http.StatusOK, field)
}
