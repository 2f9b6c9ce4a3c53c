package broker

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Ключи маршрутизации
const (
	RoutingReservationCreated = "reservation.created"
	RoutingSlotsGenerated     = "slots.generated"
)

// ReservationCreated событие о новом бронировании
type ReservationCreated struct {
	EventID         string    `json:"event_id"`
	OccurredAt      time.Time `json:"occurred_at"`
	ReservationID   int64     `json:"reservation_id"`
	AvailabilityID  int64     `json:"availability_id"`
	CustomerID      string    `json:"customer_id"`
	DepositPaid     bool      `json:"deposit_paid"`
	ReservationTime time.Time `json:"reservation_time"`
}

// NewReservationCreated строит событие по созданному бронированию
func NewReservationCreated(r *domain.Reservation, now time.Time) ReservationCreated {
	return ReservationCreated{
		EventID:         uuid.NewString(),
		OccurredAt:      now.UTC(),
		ReservationID:   r.ID,
		AvailabilityID:  r.AvailabilityID,
		CustomerID:      r.CustomerID,
		DepositPaid:     r.DepositPaid,
		ReservationTime: r.ReservationTime.UTC(),
	}
}

// SlotsGenerated событие о генерации слотов для поля
type SlotsGenerated struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
	FieldID    int64     `json:"field_id"`
	From       string    `json:"from"`
	Days       int       `json:"days"`
	Generated  int       `json:"generated"`
	Skipped    int       `json:"skipped"`
}

// NewSlotsGenerated строит событие по итогам генерации
func NewSlotsGenerated(fieldID int64, from time.Time, days, generated, skipped int, now time.Time) SlotsGenerated {
	return SlotsGenerated{
		EventID:    uuid.NewString(),
		OccurredAt: now.UTC(),
		FieldID:    fieldID,
		From:       from.Format(domain.DateFormat),
		Days:       days,
		Generated:  generated,
		Skipped:    skipped,
	}
}
