package reserve_slot

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var (
	// ErrNotCustomer возвращается, когда бронирует не клиент
	ErrNotCustomer = fmt.Errorf("reserve_slot: only customers can reserve: %w", domain.ErrUnauthorized)

	// ErrSlotNotFound возвращается, когда слот не существует
	ErrSlotNotFound = fmt.Errorf("reserve_slot: %w", domain.ErrSlotNotFound)

	// ErrSlotAlreadyReserved возвращается, когда слот уже забронирован
	ErrSlotAlreadyReserved = fmt.Errorf("reserve_slot: %w", domain.ErrSlotAlreadyReserved)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reserve_slot: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_slot: internal error")
)

// Результаты бронирования для метрик
const (
	outcomeCreated         = "created"
	outcomeReplayed        = "replayed"
	outcomeAlreadyReserved = "already_reserved"
	outcomeNotFound        = "not_found"
	outcomeUnauthorized    = "unauthorized"
	outcomeInvalid         = "invalid"
	outcomeError           = "error"
)

func outcomeOf(err error) string {
	switch domain.KindOf(err) {
	case domain.KindSlotAlreadyReserved:
		return outcomeAlreadyReserved
	case domain.KindSlotNotFound:
		return outcomeNotFound
	case domain.KindUnauthorized:
		return outcomeUnauthorized
	case domain.KindValidation:
		return outcomeInvalid
	default:
		return outcomeError
	}
}
