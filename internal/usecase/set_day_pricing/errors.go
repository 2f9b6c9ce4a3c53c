package set_day_pricing

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var (
	// ErrNotOwner возвращается, когда вызывающий не владелец поля
	ErrNotOwner = fmt.Errorf("set_day_pricing: not the field owner: %w", domain.ErrUnauthorized)

	// ErrFieldNotFound возвращается, когда поле не найдено
	ErrFieldNotFound = fmt.Errorf("set_day_pricing: field: %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректной цене, депозите или дате
	ErrInvalidInput = fmt.Errorf("set_day_pricing: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("set_day_pricing: internal error")
)
