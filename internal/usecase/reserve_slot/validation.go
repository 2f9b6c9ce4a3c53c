package reserve_slot

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные и нормализует ключ идемпотентности
func validateRequest(req *Request) (*string, error) {
	if req.AvailabilityID <= 0 {
		return nil, fmt.Errorf("%w: availabilityID must be positive", ErrInvalidInput)
	}

	if req.IdempotencyKey == nil || strings.TrimSpace(*req.IdempotencyKey) == "" {
		return nil, nil
	}

	key, err := uuid.Parse(strings.TrimSpace(*req.IdempotencyKey))
	if err != nil {
		return nil, fmt.Errorf("%w: idempotency key must be a UUID: %v", ErrInvalidInput, err)
	}

	normalized := key.String()
	return &normalized, nil
}
