package reservation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/pgerrors"
)

const (
	constraintAvailability   = "reservations_availability_id_key"
	constraintIdempotencyKey = "reservations_customer_idempotency_key"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = fmt.Errorf("reservation.repository: reservation: %w", domain.ErrNotFound)

	// ErrSlotAlreadyReserved возвращается, когда на слот уже есть бронирование
	ErrSlotAlreadyReserved = fmt.Errorf("reservation.repository: %w", domain.ErrSlotAlreadyReserved)

	// ErrSlotNotFound возвращается, когда слот, на который ссылается бронирование, не существует
	ErrSlotNotFound = fmt.Errorf("reservation.repository: %w", domain.ErrSlotNotFound)

	// ErrDuplicateIdempotencyKey возвращается, когда у клиента уже есть бронирование с этим ключом
	ErrDuplicateIdempotencyKey = errors.New("reservation.repository: duplicate idempotency key")

	// ErrStoreUnavailable возвращается при временной недоступности БД
	ErrStoreUnavailable = fmt.Errorf("reservation.repository: %w", domain.ErrStoreUnavailable)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)

func wrapDBError(base error, op string, err error) error {
	if pgerrors.IsTransient(err) {
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s: %v", base, op, err)
}
