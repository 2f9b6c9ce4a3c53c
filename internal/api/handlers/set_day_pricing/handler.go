package set_day_pricing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	setDayPricing "github.com/m04kA/SMC-FieldBookingService/internal/usecase/set_day_pricing"
)

const (
	msgInvalidFieldID     = "некорректный ID поля"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingPrincipal   = "требуется авторизация"
	msgForbidden          = "менять цены может только владелец поля"
	msgFieldNotFound      = "поле не найдено"
	msgInvalidPricing     = "цена и депозит должны быть неотрицательными, депозит меньше цены"
	msgStoreUnavailable   = "хранилище временно недоступно, повторите запрос"
)

type Handler struct {
	useCase SetDayPricingUseCase
	logger  Logger
}

func NewHandler(useCase SetDayPricingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/fields/{fieldId}/slots/pricing
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldID, err := strconv.ParseInt(mux.Vars(r)["fieldId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /fields/{id}/slots/pricing - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("PATCH /fields/{id}/slots/pricing - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req SetDayPricingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /fields/{id}/slots/pricing - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(principal, fieldID)
	if err != nil {
		h.logger.Warn("PATCH /fields/{id}/slots/pricing - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, setDayPricing.ErrNotOwner):
			h.logger.Warn("PATCH /fields/{id}/slots/pricing - Not owner: field_id=%d, account=%s", fieldID, principal.AccountID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, setDayPricing.ErrFieldNotFound):
			h.logger.Warn("PATCH /fields/{id}/slots/pricing - Field not found: field_id=%d", fieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, setDayPricing.ErrInvalidInput):
			h.logger.Warn("PATCH /fields/{id}/slots/pricing - Invalid pricing: field_id=%d, error=%v", fieldID, err)
			handlers.RespondBadRequest(w, msgInvalidPricing)

		case errors.Is(err, domain.ErrStoreUnavailable):
			h.logger.Error("PATCH /fields/{id}/slots/pricing - Store unavailable: field_id=%d, error=%v", fieldID, err)
			handlers.RespondUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("PATCH /fields/{id}/slots/pricing - Failed to set pricing: field_id=%d, error=%v", fieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /fields/{id}/slots/pricing - Pricing updated: field_id=%d, date=%s, updated=%d, skipped=%d",
		fieldID, req.Date, len(result.UpdatedIDs), len(result.SkippedIDs))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
