package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/pgerrors"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = fmt.Errorf("availability.repository: %w", domain.ErrSlotNotFound)

	// ErrFieldNotFound возвращается, когда поле, на которое ссылается слот, не существует
	ErrFieldNotFound = fmt.Errorf("availability.repository: field: %w", domain.ErrNotFound)

	// ErrInvalidSlot возвращается при нарушении CHECK ограничений (время, цена, депозит)
	ErrInvalidSlot = fmt.Errorf("availability.repository: %w", domain.ErrValidation)

	// ErrSlotConflict возвращается, когда слот с тем же (field, date, start_time) создан параллельно.
	// Повтор операции увидит созданный слот.
	ErrSlotConflict = fmt.Errorf("availability.repository: slot created concurrently: %w", domain.ErrStoreUnavailable)

	// ErrStoreUnavailable возвращается при временной недоступности БД
	ErrStoreUnavailable = fmt.Errorf("availability.repository: %w", domain.ErrStoreUnavailable)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)

// wrapDBError помечает временные ошибки драйвера как ErrStoreUnavailable, остальные оборачивает в base
func wrapDBError(base error, op string, err error) error {
	if pgerrors.IsTransient(err) {
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s: %v", base, op, err)
}

// wrapWriteError дополнительно разбирает нарушения ограничений при записи
func wrapWriteError(op string, err error) error {
	switch {
	case pgerrors.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s", ErrSlotConflict, op)
	case pgerrors.IsCheckViolation(err):
		return fmt.Errorf("%w: %s: %v", ErrInvalidSlot, op, err)
	case pgerrors.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s", ErrFieldNotFound, op)
	default:
		return wrapDBError(ErrExecQuery, op, err)
	}
}
