package upsert_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	upsertSlots "github.com/m04kA/SMC-FieldBookingService/internal/usecase/upsert_slots"
)

const (
	msgInvalidFieldID     = "некорректный ID поля"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingPrincipal   = "требуется авторизация"
	msgForbidden          = "изменять слоты может только владелец поля"
	msgFieldNotFound      = "поле не найдено"
	msgInvalidItems       = "некорректный список слотов"
	msgStoreUnavailable   = "хранилище временно недоступно, повторите запрос"
)

type Handler struct {
	useCase UpsertSlotsUseCase
	logger  Logger
}

func NewHandler(useCase UpsertSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/fields/{fieldId}/slots
// Один элемент - его ошибка возвращается статусом ответа.
// Несколько элементов - 200 (все применены) или 207 с результатом по каждому.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldID, err := strconv.ParseInt(mux.Vars(r)["fieldId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /fields/{id}/slots - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("PUT /fields/{id}/slots - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req UpsertSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /fields/{id}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(principal, fieldID)
	if err != nil {
		h.logger.Warn("PUT /fields/{id}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, upsertSlots.ErrNotOwner):
			h.logger.Warn("PUT /fields/{id}/slots - Not owner: field_id=%d, account=%s", fieldID, principal.AccountID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, upsertSlots.ErrFieldNotFound):
			h.logger.Warn("PUT /fields/{id}/slots - Field not found: field_id=%d", fieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, upsertSlots.ErrInvalidInput):
			h.logger.Warn("PUT /fields/{id}/slots - Invalid items: field_id=%d, error=%v", fieldID, err)
			handlers.RespondBadRequest(w, msgInvalidItems)

		default:
			h.logger.Error("PUT /fields/{id}/slots - Failed to upsert slots: field_id=%d, error=%v", fieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	if len(result.Results) == 1 && result.Results[0].Err != nil {
		itemErr := result.Results[0].Err
		kind := domain.KindOf(itemErr)
		h.logger.Warn("PUT /fields/{id}/slots - Slot rejected: field_id=%d, kind=%s, error=%v", fieldID, kind, itemErr)
		switch kind {
		case domain.KindInternal:
			handlers.RespondInternalError(w)
		case domain.KindStoreUnavailable:
			handlers.RespondUnavailable(w, msgStoreUnavailable)
		default:
			handlers.RespondErrorKind(w, handlers.StatusFor(kind), kind, itemErr.Error())
		}
		return
	}

	status := http.StatusOK
	if response.Failed > 0 {
		status = http.StatusMultiStatus
	}

	h.logger.Info("PUT /fields/{id}/slots - Slots upserted: field_id=%d, succeeded=%d, failed=%d",
		fieldID, response.Succeeded, response.Failed)
	handlers.RespondJSON(w, status, response)
}
