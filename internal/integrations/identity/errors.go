package identity

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var (
	// ErrInvalidToken возвращается для отсутствующего, просроченного или поддельного токена
	ErrInvalidToken = fmt.Errorf("identity: invalid token: %w", domain.ErrUnauthorized)

	// ErrUnknownRole возвращается, когда роль в токене не admin и не customer
	ErrUnknownRole = fmt.Errorf("identity: unknown role: %w", domain.ErrUnauthorized)

	// ErrProviderUnavailable возвращается при недоступности провайдера идентификации
	ErrProviderUnavailable = fmt.Errorf("identity: provider unavailable: %w", domain.ErrStoreUnavailable)

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("identity: invalid provider response")
)
