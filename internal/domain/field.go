package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Field an owned bookable facility
type Field struct {
	ID          int64
	OwnerID     string
	CityID      int64
	Name        string
	Location    string
	Description *string
	ImageURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy returns true if the principal owns the field
func (f *Field) IsOwnedBy(p Principal) bool {
	return p.IsOwner() && f.OwnerID == p.AccountID
}

// Validate checks the field attributes an owner can edit
func (f *Field) Validate() error {
	var errs []error
	if f.CityID <= 0 {
		errs = append(errs, errors.New("city_id must be positive"))
	}
	if name := strings.TrimSpace(f.Name); name == "" || len(name) > MaxFieldNameLength {
		errs = append(errs, fmt.Errorf("name must be 1..%d characters", MaxFieldNameLength))
	}
	if loc := strings.TrimSpace(f.Location); loc == "" || len(loc) > MaxFieldLocationLength {
		errs = append(errs, fmt.Errorf("location must be 1..%d characters", MaxFieldLocationLength))
	}
	if f.Description != nil && len(*f.Description) > MaxDescriptionLength {
		errs = append(errs, fmt.Errorf("description must be at most %d characters", MaxDescriptionLength))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrValidation, errors.Join(errs...))
	}
	return nil
}

// FieldSummary field with city name and slot price span for listings
type FieldSummary struct {
	Field
	CityName string
	MinPrice *float64 // nil, если у поля нет слотов
	MaxPrice *float64
}

// FieldSort порядок сортировки в поиске полей
type FieldSort string

const (
	FieldSortPriceAsc  FieldSort = "price_asc"
	FieldSortPriceDesc FieldSort = "price_desc"
	FieldSortNameAsc   FieldSort = "name_asc"
	FieldSortNameDesc  FieldSort = "name_desc"
)

// IsValid returns true for a known sort key
func (s FieldSort) IsValid() bool {
	switch s {
	case FieldSortPriceAsc, FieldSortPriceDesc, FieldSortNameAsc, FieldSortNameDesc:
		return true
	}
	return false
}

// FieldFilter фильтр поиска полей
type FieldFilter struct {
	CityID *int64
	// Query поиск по name/location (ILIKE)
	Query string
	// Поле подходит, если диапазон цен его слотов пересекается с [MinPrice, MaxPrice]
	MinPrice *float64
	MaxPrice *float64
	// Sort пусто = name_asc
	Sort FieldSort
}
