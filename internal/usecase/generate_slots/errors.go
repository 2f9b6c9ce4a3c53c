package generate_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var (
	// ErrNotOwner возвращается, когда вызывающий не владелец поля
	ErrNotOwner = fmt.Errorf("generate_slots: not the field owner: %w", domain.ErrUnauthorized)

	// ErrFieldNotFound возвращается, когда поле не найдено
	ErrFieldNotFound = fmt.Errorf("generate_slots: field: %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректном шаблоне, окне или дате начала
	ErrInvalidInput = fmt.Errorf("generate_slots: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
