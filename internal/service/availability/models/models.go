package models

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Request модели

// CitySlotsRequest запрос на получение слотов города
type CitySlotsRequest struct {
	CityID   int64      `json:"cityId"`
	DateFrom *time.Time `json:"dateFrom,omitempty"`
	DateTo   *time.Time `json:"dateTo,omitempty"`
	MinPrice *float64   `json:"minPrice,omitempty"`
	MaxPrice *float64   `json:"maxPrice,omitempty"`
	OnlyFree bool       `json:"onlyFree,omitempty"`
	Sort     string     `json:"sort,omitempty"` // price_asc | price_desc | name_asc | name_desc
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *CitySlotsRequest) ToDomainFilter() domain.CitySlotsFilter {
	filter := domain.CitySlotsFilter{
		CityID:   r.CityID,
		MinPrice: r.MinPrice,
		MaxPrice: r.MaxPrice,
		OnlyFree: r.OnlyFree,
		Sort:     domain.SlotSort(r.Sort),
	}
	if r.DateFrom != nil {
		from := domain.NormalizeDate(*r.DateFrom)
		filter.DateFrom = &from
	}
	if r.DateTo != nil {
		to := domain.NormalizeDate(*r.DateTo)
		filter.DateTo = &to
	}
	return filter
}

// Response модели

// SlotResponse слот доступности
type SlotResponse struct {
	ID            int64   `json:"id"`
	FieldID       int64   `json:"fieldId"`
	Date          string  `json:"date"`      // "2024-06-10"
	StartTime     string  `json:"startTime"` // "18:00"
	EndTime       string  `json:"endTime"`
	Price         float64 `json:"price"`
	DepositAmount float64 `json:"depositAmount"`
	IsReserved    bool    `json:"isReserved"`
}

// SlotListResponse слоты поля на дату
type SlotListResponse struct {
	FieldID int64          `json:"fieldId"`
	Date    string         `json:"date"`
	Slots   []SlotResponse `json:"slots"`
}

// CitySlotResponse слот с данными поля и города
type CitySlotResponse struct {
	SlotResponse
	FieldName     string `json:"fieldName"`
	FieldLocation string `json:"fieldLocation"`
	CityID        int64  `json:"cityId"`
	CityName      string `json:"cityName"`
}

// CitySlotListResponse слоты города
type CitySlotListResponse struct {
	Slots []CitySlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) SlotResponse {
	return SlotResponse{
		ID:            s.ID,
		FieldID:       s.FieldID,
		Date:          s.Date.Format(domain.DateFormat),
		StartTime:     s.StartTime.String(),
		EndTime:       s.EndTime.String(),
		Price:         s.Price,
		DepositAmount: s.DepositAmount,
		IsReserved:    s.IsReserved,
	}
}

// FromDomainSlotList конвертирует список слотов поля
func FromDomainSlotList(fieldID int64, date time.Time, slots []*domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{
		FieldID: fieldID,
		Date:    date.Format(domain.DateFormat),
		Slots:   make([]SlotResponse, 0, len(slots)),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, FromDomainSlot(s))
	}
	return resp
}

// FromDomainListings конвертирует слоты города
func FromDomainListings(listings []*domain.SlotListing) *CitySlotListResponse {
	resp := &CitySlotListResponse{
		Slots: make([]CitySlotResponse, 0, len(listings)),
	}
	for _, l := range listings {
		resp.Slots = append(resp.Slots, CitySlotResponse{
			SlotResponse:  FromDomainSlot(&l.Slot),
			FieldName:     l.FieldName,
			FieldLocation: l.FieldLocation,
			CityID:        l.CityID,
			CityName:      l.CityName,
		})
	}
	return resp
}
