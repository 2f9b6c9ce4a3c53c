package broker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

func TestNewReservationCreated(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	r := &domain.Reservation{
		ID:              7,
		CustomerID:      "customer-1",
		AvailabilityID:  42,
		ReservationTime: now,
	}

	first := NewReservationCreated(r, now)
	second := NewReservationCreated(r, now)

	_, err := uuid.Parse(first.EventID)
	require.NoError(t, err)
	assert.NotEqual(t, first.EventID, second.EventID)

	raw, err := json.Marshal(first)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, float64(42), decoded["availability_id"])
	assert.Equal(t, "customer-1", decoded["customer_id"])
}

func TestNewSlotsGenerated(t *testing.T) {
	from := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	evt := NewSlotsGenerated(3, from, 30, 4, 0, from)

	assert.Equal(t, "2024-06-05", evt.From)
	assert.Equal(t, 4, evt.Generated)
}

func TestNoop(t *testing.T) {
	var n Noop
	assert.NoError(t, n.PublishJSON(context.Background(), RoutingReservationCreated, struct{}{}))
	assert.NoError(t, n.Close())
}
