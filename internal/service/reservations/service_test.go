package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	details []*domain.ReservationDetail
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.ReservationDetail, error) {
	for _, d := range r.details {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) ListByCustomer(_ context.Context, customerID string) ([]*domain.ReservationDetail, error) {
	var out []*domain.ReservationDetail
	for _, d := range r.details {
		if d.CustomerID == customerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.ReservationDetail, error) {
	var out []*domain.ReservationDetail
	for _, d := range r.details {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func detail(id int64, customerID, ownerID string) *domain.ReservationDetail {
	return &domain.ReservationDetail{
		Reservation: domain.Reservation{
			ID:              id,
			CustomerID:      customerID,
			AvailabilityID:  id * 10,
			ReservationTime: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		},
		FieldID:   1,
		FieldName: "Arena",
		OwnerID:   ownerID,
		Date:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime: types.MustTimeString("18:00"),
		EndTime:   types.MustTimeString("19:00"),
		Price:     1000,
	}
}

func TestService_GetByID_Visibility(t *testing.T) {
	svc := NewService(&fakeRepo{details: []*domain.ReservationDetail{detail(1, "c1", "o1")}}, nopLogger{})
	ctx := context.Background()

	tests := []struct {
		name      string
		principal domain.Principal
		want      error
	}{
		{name: "customer who reserved", principal: domain.Principal{AccountID: "c1", Role: domain.RoleCustomer}},
		{name: "field owner", principal: domain.Principal{AccountID: "o1", Role: domain.RoleOwner}},
		{name: "other customer", principal: domain.Principal{AccountID: "c2", Role: domain.RoleCustomer}, want: ErrAccessDenied},
		{name: "other owner", principal: domain.Principal{AccountID: "o2", Role: domain.RoleOwner}, want: ErrAccessDenied},
		{name: "owner id with customer role", principal: domain.Principal{AccountID: "o1", Role: domain.RoleCustomer}, want: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.GetByID(ctx, tt.principal, 1)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "2024-06-10", resp.Date)
			assert.Equal(t, "18:00", resp.StartTime)
		})
	}

	_, err := svc.GetByID(ctx, domain.Principal{AccountID: "c1", Role: domain.RoleCustomer}, 99)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestService_ListForPrincipal(t *testing.T) {
	svc := NewService(&fakeRepo{details: []*domain.ReservationDetail{
		detail(1, "c1", "o1"),
		detail(2, "c2", "o1"),
		detail(3, "c1", "o2"),
	}}, nopLogger{})
	ctx := context.Background()

	mine, err := svc.ListForPrincipal(ctx, domain.Principal{AccountID: "c1", Role: domain.RoleCustomer})
	require.NoError(t, err)
	assert.Len(t, mine.Reservations, 2)

	owned, err := svc.ListForPrincipal(ctx, domain.Principal{AccountID: "o1", Role: domain.RoleOwner})
	require.NoError(t, err)
	assert.Len(t, owned.Reservations, 2)

	_, err = svc.ListForPrincipal(ctx, domain.Principal{})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
