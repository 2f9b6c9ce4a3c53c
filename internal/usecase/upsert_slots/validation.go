package upsert_slots

import (
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

type itemKey struct {
	date  string
	start int
}

// validateRequest проверяет форму запроса. Атрибуты слотов проверяются
// при применении каждого элемента, так как зависят от текущего состояния слота.
func validateRequest(req *Request) error {
	if req.FieldID <= 0 {
		return fmt.Errorf("%w: fieldID must be positive", ErrInvalidInput)
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidInput)
	}
	if len(req.Items) > domain.MaxBulkUpsertItems {
		return fmt.Errorf("%w: at most %d items per request", ErrInvalidInput, domain.MaxBulkUpsertItems)
	}

	seen := make(map[itemKey]int, len(req.Items))
	for i, item := range req.Items {
		if item.Date.IsZero() {
			return fmt.Errorf("%w: item %d: date is required", ErrInvalidInput, i)
		}
		if err := item.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: item %d: invalid startTime: %v", ErrInvalidInput, i, err)
		}
		if item.StartTime.Minutes() >= types.MinutesPerDay {
			return fmt.Errorf("%w: item %d: startTime %s is out of day", ErrInvalidInput, i, item.StartTime)
		}

		k := itemKey{domain.NormalizeDate(item.Date).Format(domain.DateFormat), item.StartTime.Minutes()}
		if prev, dup := seen[k]; dup {
			return fmt.Errorf("%w: items %d and %d target the same slot %s %s", ErrInvalidInput, prev, i, k.date, item.StartTime)
		}
		seen[k] = i
	}

	return nil
}
