package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// TemplateEntry one recurring weekly slot. DayOfWeek follows time.Weekday (0 = Sunday).
type TemplateEntry struct {
	DayOfWeek     int
	StartTime     types.TimeString
	EndTime       types.TimeString
	Price         float64
	DepositAmount float64
}

// WeeklyTemplate an owner's recurring schedule
type WeeklyTemplate []TemplateEntry

type templateKey struct {
	day   int
	start int
}

// Validate rejects the whole template if any entry is invalid, so a schedule
// is never generated partially. All problems are reported together.
func (t WeeklyTemplate) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: template has no entries", ErrValidation)
	}

	var errs []error
	seen := make(map[templateKey]int, len(t))
	for i, e := range t {
		if e.DayOfWeek < 0 || e.DayOfWeek > 6 {
			errs = append(errs, fmt.Errorf("entry %d: day_of_week %d out of range [0,6]", i, e.DayOfWeek))
		}
		if err := checkTimes(e.StartTime, e.EndTime); err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %v", i, err))
		}
		if err := checkPricing(e.Price, e.DepositAmount); err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %v", i, err))
		}

		key := templateKey{day: e.DayOfWeek, start: e.StartTime.Minutes()}
		if prev, ok := seen[key]; ok {
			errs = append(errs, fmt.Errorf("entry %d: duplicates entry %d (day %d, start %s)", i, prev, e.DayOfWeek, e.StartTime))
		} else {
			seen[key] = i
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrValidation, errors.Join(errs...))
	}
	return nil
}

// Expand produces the concrete slots for days [from, from+days). Slots are
// ordered by date and then by start time. The template must be validated first.
func (t WeeklyTemplate) Expand(fieldID int64, from time.Time, days int) []*Slot {
	from = NormalizeDate(from)

	byDay := make(map[time.Weekday][]TemplateEntry, 7)
	for _, e := range t {
		wd := time.Weekday(e.DayOfWeek)
		byDay[wd] = append(byDay[wd], e)
	}
	for _, entries := range byDay {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].StartTime.IsBefore(entries[j].StartTime)
		})
	}

	slots := make([]*Slot, 0, len(t)*((days+6)/7))
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i)
		for _, e := range byDay[date.Weekday()] {
			slots = append(slots, &Slot{
				FieldID:       fieldID,
				Date:          date,
				StartTime:     e.StartTime,
				EndTime:       e.EndTime,
				Price:         e.Price,
				DepositAmount: e.DepositAmount,
				IsReserved:    false,
			})
		}
	}
	return slots
}

// ValidateWindow checks the generation window length against maxDays.
// A non-positive or too large maxDays falls back to MaxGenerationWindowDays.
func ValidateWindow(days, maxDays int) error {
	maxDays = EffectiveMaxWindow(maxDays)
	if days < MinGenerationWindowDays || days > maxDays {
		return fmt.Errorf("%w: window_days must be between %d and %d, got %d",
			ErrValidation, MinGenerationWindowDays, maxDays, days)
	}
	return nil
}

// EffectiveMaxWindow clamps a configured window limit to MaxGenerationWindowDays
func EffectiveMaxWindow(maxDays int) int {
	if maxDays <= 0 || maxDays > MaxGenerationWindowDays {
		return MaxGenerationWindowDays
	}
	return maxDays
}
