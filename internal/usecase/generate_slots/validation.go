package generate_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// validateRequest валидирует запрос целиком; при ошибке ничего не записывается
func validateRequest(req *Request, windowDays, maxWindowDays int) error {
	if req.FieldID <= 0 {
		return fmt.Errorf("%w: fieldID must be positive", ErrInvalidInput)
	}

	if err := req.Template.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := domain.ValidateWindow(windowDays, maxWindowDays); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return nil
}

// resolveStart возвращает первый день окна. Окно не может начинаться в прошлом.
func resolveStart(startDate *time.Time, now time.Time) (time.Time, error) {
	today := domain.NormalizeDate(now)
	if startDate == nil {
		return today, nil
	}

	from := domain.NormalizeDate(*startDate)
	if from.Before(today) {
		return time.Time{}, fmt.Errorf("%w: start date %s is in the past", ErrInvalidInput, from.Format(domain.DateFormat))
	}
	return from, nil
}
