package create_field

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPrincipal   = "требуется авторизация"
	msgForbidden          = "создавать поля может только владелец"
	msgUnknownCity        = "город не найден"
	msgInvalidField       = "некорректные данные поля или шаблона"
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

// Handle POST /api/v1/fields
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /fields - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req models.CreateFieldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /fields - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), principal, &req)
	if err != nil {
		switch {
		case errors.Is(err, fields.ErrAccessDenied):
			h.logger.Warn("POST /fields - Access denied: account=%s", principal.AccountID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, fields.ErrCityNotFound):
			h.logger.Warn("POST /fields - Unknown city: city_id=%d", req.CityID)
			handlers.RespondBadRequest(w, msgUnknownCity)

		case errors.Is(err, fields.ErrInvalidInput):
			h.logger.Warn("POST /fields - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidField)

		default:
			h.logger.Error("POST /fields - Failed to create field: account=%s, error=%v", principal.AccountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /fields - Field created successfully: field_id=%d, account=%s",
		result.Field.ID, principal.AccountID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
