package reserve_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	reserveSlot "github.com/m04kA/SMC-FieldBookingService/internal/usecase/reserve_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingPrincipal   = "требуется авторизация"
	msgNotCustomer        = "бронировать слоты может только клиент"
	msgInvalidInput       = "некорректный ID слота или ключ идемпотентности"
	msgSlotNotFound       = "слот не найден"
	msgSlotReserved       = "слот уже забронирован"
	msgStoreUnavailable   = "хранилище временно недоступно, повторите запрос с тем же ключом"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
// Header Idempotency-Key (опционально): повтор с тем же ключом возвращает исходное бронирование с 200.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req ReserveSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(principal, r.Header.Get(IdempotencyKeyHeader)))
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrNotCustomer):
			h.logger.Warn("POST /reservations - Not a customer: account=%s", principal.AccountID)
			handlers.RespondForbidden(w, msgNotCustomer)

		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, reserveSlot.ErrSlotNotFound):
			h.logger.Warn("POST /reservations - Slot not found: availability_id=%d", req.AvailabilityID)
			handlers.RespondErrorKind(w, http.StatusNotFound, domain.KindSlotNotFound, msgSlotNotFound)

		case errors.Is(err, reserveSlot.ErrSlotAlreadyReserved):
			h.logger.Warn("POST /reservations - Slot already reserved: availability_id=%d, account=%s",
				req.AvailabilityID, principal.AccountID)
			handlers.RespondConflict(w, msgSlotReserved)

		case errors.Is(err, domain.ErrStoreUnavailable):
			h.logger.Error("POST /reservations - Store unavailable: availability_id=%d, error=%v", req.AvailabilityID, err)
			handlers.RespondUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("POST /reservations - Failed to reserve: availability_id=%d, account=%s, error=%v",
				req.AvailabilityID, principal.AccountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}

	h.logger.Info("POST /reservations - Slot reserved: reservation_id=%d, availability_id=%d, account=%s, replayed=%t",
		result.ReservationID, result.AvailabilityID, principal.AccountID, result.Replayed)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
