package city

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/pgerrors"
)

var (
	// ErrCityNotFound возвращается, когда город не найден
	ErrCityNotFound = fmt.Errorf("city.repository: city: %w", domain.ErrNotFound)

	// ErrStoreUnavailable возвращается при временной недоступности БД
	ErrStoreUnavailable = fmt.Errorf("city.repository: %w", domain.ErrStoreUnavailable)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("city.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("city.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("city.repository: failed to scan row")
)

func wrapDBError(base error, op string, err error) error {
	if pgerrors.IsTransient(err) {
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s: %v", base, op, err)
}
