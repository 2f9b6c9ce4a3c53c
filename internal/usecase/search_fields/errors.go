package search_fields

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных параметрах поиска
	ErrInvalidInput = fmt.Errorf("search_fields: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("search_fields: internal error")
)
