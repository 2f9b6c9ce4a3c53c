package fields

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var (
	// ErrFieldNotFound возвращается, когда поле не найдено
	ErrFieldNotFound = fmt.Errorf("fields: field: %w", domain.ErrNotFound)

	// ErrCityNotFound возвращается, когда указан несуществующий город
	ErrCityNotFound = fmt.Errorf("fields: unknown city: %w", domain.ErrValidation)

	// ErrAccessDenied возвращается, когда вызывающий не владелец или не имеет роли владельца
	ErrAccessDenied = fmt.Errorf("fields: access denied: %w", domain.ErrUnauthorized)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("fields: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("fields: internal error")
)
