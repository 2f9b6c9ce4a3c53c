package models

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// ReservationResponse бронирование со слотом и полем
type ReservationResponse struct {
	ID              int64     `json:"id"`
	CustomerID      string    `json:"customerId"`
	AvailabilityID  int64     `json:"availabilityId"`
	DepositPaid     bool      `json:"depositPaid"`
	ReservationTime time.Time `json:"reservationTime"`

	// Денормализованные данные слота и поля
	FieldID       int64   `json:"fieldId"`
	FieldName     string  `json:"fieldName"`
	FieldLocation string  `json:"fieldLocation"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Price         float64 `json:"price"`
	DepositAmount float64 `json:"depositAmount"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainDetail конвертирует domain модель в DTO
func FromDomainDetail(d *domain.ReservationDetail) *ReservationResponse {
	if d == nil {
		return nil
	}
	return &ReservationResponse{
		ID:              d.ID,
		CustomerID:      d.CustomerID,
		AvailabilityID:  d.AvailabilityID,
		DepositPaid:     d.DepositPaid,
		ReservationTime: d.ReservationTime,
		FieldID:         d.FieldID,
		FieldName:       d.FieldName,
		FieldLocation:   d.FieldLocation,
		Date:            d.Date.Format(domain.DateFormat),
		StartTime:       d.StartTime.String(),
		EndTime:         d.EndTime.String(),
		Price:           d.Price,
		DepositAmount:   d.DepositAmount,
	}
}

// FromDomainDetailList конвертирует список бронирований
func FromDomainDetailList(details []*domain.ReservationDetail) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(details)),
	}
	for _, d := range details {
		resp.Reservations = append(resp.Reservations, *FromDomainDetail(d))
	}
	return resp
}
