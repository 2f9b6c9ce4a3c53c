package search_fields

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	searchFields "github.com/m04kA/SMC-FieldBookingService/internal/usecase/search_fields"
)

const (
	msgInvalidQuery = "некорректные параметры поиска"
)

type Handler struct {
	useCase SearchFieldsUseCase
	logger  Logger
}

func NewHandler(useCase SearchFieldsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/fields
// Query params: cityId, q, minPrice, maxPrice, sort
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /fields - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, searchFields.ErrInvalidInput):
			h.logger.Warn("GET /fields - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /fields - Failed to search fields: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /fields - Fields found: count=%d, cached=%t", len(result.Fields), result.Cached)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
