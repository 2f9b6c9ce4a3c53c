package generate_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	generateSlots "github.com/m04kA/SMC-FieldBookingService/internal/usecase/generate_slots"
)

const (
	msgInvalidFieldID     = "некорректный ID поля"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartDate   = "некорректный формат даты начала, ожидается YYYY-MM-DD"
	msgMissingPrincipal   = "требуется авторизация"
	msgForbidden          = "генерировать слоты может только владелец поля"
	msgFieldNotFound      = "поле не найдено"
	msgInvalidTemplate    = "некорректный шаблон или окно генерации"
	msgStoreUnavailable   = "хранилище временно недоступно, повторите запрос"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/fields/{fieldId}/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldID, err := strconv.ParseInt(mux.Vars(r)["fieldId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /fields/{id}/slots/generate - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /fields/{id}/slots/generate - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /fields/{id}/slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(principal, fieldID)
	if err != nil {
		h.logger.Warn("POST /fields/{id}/slots/generate - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrNotOwner):
			h.logger.Warn("POST /fields/{id}/slots/generate - Not owner: field_id=%d, account=%s", fieldID, principal.AccountID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, generateSlots.ErrFieldNotFound):
			h.logger.Warn("POST /fields/{id}/slots/generate - Field not found: field_id=%d", fieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /fields/{id}/slots/generate - Invalid template: field_id=%d, error=%v", fieldID, err)
			handlers.RespondBadRequest(w, msgInvalidTemplate)

		case errors.Is(err, domain.ErrStoreUnavailable):
			h.logger.Error("POST /fields/{id}/slots/generate - Store unavailable: field_id=%d, error=%v", fieldID, err)
			handlers.RespondUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("POST /fields/{id}/slots/generate - Failed to generate slots: field_id=%d, error=%v", fieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /fields/{id}/slots/generate - Slots generated: field_id=%d, generated=%d, skipped=%d",
		fieldID, result.Generated, result.Skipped)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
