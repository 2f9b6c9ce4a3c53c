package reserve_slot

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	reserveSlot "github.com/m04kA/SMC-FieldBookingService/internal/usecase/reserve_slot"
)

// IdempotencyKeyHeader заголовок с UUID ключом идемпотентности
const IdempotencyKeyHeader = "Idempotency-Key"

// ReserveSlotRequest HTTP request model
type ReserveSlotRequest struct {
	AvailabilityID int64 `json:"availabilityId"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64  `json:"id"`
	AvailabilityID  int64  `json:"availabilityId"`
	CustomerID      string `json:"customerId"`
	DepositPaid     bool   `json:"depositPaid"`
	ReservationTime string `json:"reservationTime"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReserveSlotRequest) ToUseCaseRequest(principal domain.Principal, idempotencyKey string) *reserveSlot.Request {
	req := &reserveSlot.Request{
		Principal:      principal,
		AvailabilityID: r.AvailabilityID,
	}
	if idempotencyKey != "" {
		req.IdempotencyKey = &idempotencyKey
	}
	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ReservationID,
		AvailabilityID:  resp.AvailabilityID,
		CustomerID:      resp.CustomerID,
		DepositPaid:     resp.DepositPaid,
		ReservationTime: resp.ReservationTime.Format(time.RFC3339),
	}
}
