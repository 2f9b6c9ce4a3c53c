package search_fields

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// validateFilter валидирует параметры поиска
func validateFilter(f domain.FieldFilter) error {
	if f.CityID != nil && *f.CityID <= 0 {
		return fmt.Errorf("%w: cityId must be positive", ErrInvalidInput)
	}

	if len(f.Query) > domain.MaxSearchQueryLength {
		return fmt.Errorf("%w: query must be at most %d characters", ErrInvalidInput, domain.MaxSearchQueryLength)
	}

	if (f.MinPrice != nil && *f.MinPrice < 0) || (f.MaxPrice != nil && *f.MaxPrice < 0) {
		return fmt.Errorf("%w: price bounds must be non-negative", ErrInvalidInput)
	}

	if f.MinPrice != nil && f.MaxPrice != nil && *f.MaxPrice < *f.MinPrice {
		return fmt.Errorf("%w: maxPrice is less than minPrice", ErrInvalidInput)
	}

	if f.Sort != "" && !f.Sort.IsValid() {
		return fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, f.Sort)
	}

	return nil
}

// normalizeFilter приводит фильтр к каноническому виду, чтобы одинаковые запросы
// попадали в один ключ кэша
func normalizeFilter(f domain.FieldFilter) domain.FieldFilter {
	f.Query = strings.ToLower(strings.TrimSpace(f.Query))
	if f.Sort == "" {
		f.Sort = domain.FieldSortNameAsc
	}
	return f
}
