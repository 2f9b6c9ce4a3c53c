package domain

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// Reservation a customer's claim on one slot
type Reservation struct {
	ID              int64
	CustomerID      string
	AvailabilityID  int64
	DepositPaid     bool
	ReservationTime time.Time
	IdempotencyKey  *string
}

// ReservationDetail reservation joined with its slot and field for history views
type ReservationDetail struct {
	Reservation
	FieldID       int64
	FieldName     string
	FieldLocation string
	OwnerID       string
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	Price         float64
	DepositAmount float64
}

// IsVisibleTo returns true if the principal may read the reservation:
// the customer who made it or the owner of the field
func (d *ReservationDetail) IsVisibleTo(p Principal) bool {
	switch {
	case p.IsCustomer():
		return d.CustomerID == p.AccountID
	case p.IsOwner():
		return d.OwnerID == p.AccountID
	default:
		return false
	}
}
