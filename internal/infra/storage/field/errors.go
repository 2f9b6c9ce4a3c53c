package field

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/pgerrors"
)

var (
	// ErrFieldNotFound возвращается, когда поле не найдено
	ErrFieldNotFound = fmt.Errorf("field.repository: field: %w", domain.ErrNotFound)

	// ErrCityNotFound возвращается, когда город поля не существует
	ErrCityNotFound = fmt.Errorf("field.repository: city: %w", domain.ErrValidation)

	// ErrStoreUnavailable возвращается при временной недоступности БД
	ErrStoreUnavailable = fmt.Errorf("field.repository: %w", domain.ErrStoreUnavailable)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("field.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("field.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("field.repository: failed to scan row")
)

func wrapDBError(base error, op string, err error) error {
	if pgerrors.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %s", ErrCityNotFound, op)
	}
	if pgerrors.IsTransient(err) {
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s: %v", base, op, err)
}
