package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// Slot the unit of bookability: one (field, date, start_time) record
type Slot struct {
	ID            int64
	FieldID       int64
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	Price         float64
	DepositAmount float64
	IsReserved    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidatePricing checks that both amounts are non-negative and the deposit
// is strictly less than the price
func ValidatePricing(price, deposit float64) error {
	if err := checkPricing(price, deposit); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// ValidateTimes checks that both times are valid and end is after start
func ValidateTimes(start, end types.TimeString) error {
	if err := checkTimes(start, end); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func checkPricing(price, deposit float64) error {
	if price < 0 || deposit < 0 {
		return errors.New("price and deposit must be non-negative")
	}
	if deposit >= price {
		return fmt.Errorf("deposit %.2f must be less than price %.2f", deposit, price)
	}
	return nil
}

func checkTimes(start, end types.TimeString) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("start_time %q: %v", start, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("end_time %q: %v", end, err)
	}
	if start.Minutes() >= types.MinutesPerDay {
		return fmt.Errorf("start_time %s is out of day", start)
	}
	if !end.IsAfter(start) {
		return fmt.Errorf("end_time %s must be after start_time %s", end, start)
	}
	return nil
}

// Validate checks the slot invariants
func (s *Slot) Validate() error {
	if err := ValidateTimes(s.StartTime, s.EndTime); err != nil {
		return err
	}
	return ValidatePricing(s.Price, s.DepositAmount)
}

// SlotListing slot joined with field and city metadata for browsing
type SlotListing struct {
	Slot
	FieldName     string
	FieldLocation string
	CityID        int64
	CityName      string
}

// SlotSort порядок сортировки слотов города
type SlotSort string

const (
	SlotSortPriceAsc  SlotSort = "price_asc"
	SlotSortPriceDesc SlotSort = "price_desc"
	SlotSortNameAsc   SlotSort = "name_asc"
	SlotSortNameDesc  SlotSort = "name_desc"
)

// IsValid returns true for a known sort key
func (s SlotSort) IsValid() bool {
	switch s {
	case SlotSortPriceAsc, SlotSortPriceDesc, SlotSortNameAsc, SlotSortNameDesc:
		return true
	}
	return false
}

// CitySlotsFilter фильтр слотов города
type CitySlotsFilter struct {
	CityID   int64
	DateFrom *time.Time
	DateTo   *time.Time
	MinPrice *float64
	MaxPrice *float64
	OnlyFree bool
	Sort     SlotSort
}

// SlotPatch изменяемые атрибуты слота при upsert; nil = не менять
type SlotPatch struct {
	EndTime       *types.TimeString
	Price         *float64
	DepositAmount *float64
	IsReserved    *bool
}

// IsEmpty returns true if nothing is supplied
func (p SlotPatch) IsEmpty() bool {
	return p.EndTime == nil && p.Price == nil && p.DepositAmount == nil && p.IsReserved == nil
}

// ApplyTo returns a copy of the slot with supplied attributes replaced
func (p SlotPatch) ApplyTo(s Slot) Slot {
	if p.EndTime != nil {
		s.EndTime = *p.EndTime
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.DepositAmount != nil {
		s.DepositAmount = *p.DepositAmount
	}
	if p.IsReserved != nil {
		s.IsReserved = *p.IsReserved
	}
	return s
}

// NormalizeDate truncates t to midnight UTC of its calendar date
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
