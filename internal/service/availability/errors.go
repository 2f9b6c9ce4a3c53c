package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var (
	// ErrFieldNotFound возвращается, когда поле не найдено
	ErrFieldNotFound = fmt.Errorf("availability: field: %w", domain.ErrNotFound)

	// ErrCityNotFound возвращается, когда город не найден
	ErrCityNotFound = fmt.Errorf("availability: city: %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных параметрах фильтра
	ErrInvalidInput = fmt.Errorf("availability: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
