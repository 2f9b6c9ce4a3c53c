package get_my_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/reservations"
)

const (
	msgMissingPrincipal = "требуется авторизация"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/me/reservations
// Клиент получает свои бронирования, владелец - бронирования на своих полях.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GET /me/reservations - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	result, err := h.service.ListForPrincipal(r.Context(), principal)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /me/reservations - Access denied: account=%s", principal.AccountID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /me/reservations - Failed to list reservations: account=%s, error=%v", principal.AccountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /me/reservations - Reservations retrieved successfully: account=%s, count=%d",
		principal.AccountID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
