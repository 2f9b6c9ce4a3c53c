package get_my_fields

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields"
)

const (
	msgMissingPrincipal = "требуется авторизация"
	msgForbidden        = "список полей доступен только владельцу"
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

// Handle GET /api/v1/me/fields
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GET /me/fields - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	result, err := h.service.ListMine(r.Context(), principal)
	if err != nil {
		switch {
		case errors.Is(err, fields.ErrAccessDenied):
			h.logger.Warn("GET /me/fields - Access denied: account=%s", principal.AccountID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /me/fields - Failed to list fields: account=%s, error=%v", principal.AccountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /me/fields - Fields retrieved successfully: account=%s, count=%d",
		principal.AccountID, len(result.Fields))
	handlers.RespondJSON(w, http.StatusOK, result)
}
