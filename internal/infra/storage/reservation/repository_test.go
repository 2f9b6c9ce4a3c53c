package reservation

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations (customer_id,availability_id,deposit_paid,idempotency_key)")).
		WithArgs("customer-a", int64(1), false, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reservation_time"}).AddRow(int64(100), now))

	res, err := repo.Create(context.Background(), &domain.Reservation{
		CustomerID:     "customer-a",
		AvailabilityID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.ID)
	assert.Equal(t, now, res.ReservationTime)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_UniqueViolations(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantErr    error
	}{
		{name: "slot already reserved", constraint: constraintAvailability, wantErr: ErrSlotAlreadyReserved},
		{name: "idempotency key reused", constraint: constraintIdempotencyKey, wantErr: ErrDuplicateIdempotencyKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)

			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations")).
				WillReturnError(&pq.Error{Code: "23505", Constraint: tt.constraint})

			_, err := repo.Create(context.Background(), &domain.Reservation{
				CustomerID:     "customer-b",
				AvailabilityID: 1,
				IdempotencyKey: ptr.Ptr("3f0e8c8e-4a54-4a5e-9d39-4c4f0f6f0d11"),
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRepository_Create_SlotAlreadyReservedKind(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: constraintAvailability})

	_, err := repo.Create(context.Background(), &domain.Reservation{CustomerID: "c", AvailabilityID: 1})
	assert.Equal(t, domain.KindSlotAlreadyReserved, domain.KindOf(err))
}

func TestRepository_GetByIdempotencyKey_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations WHERE customer_id = $1 AND idempotency_key = $2")).
		WithArgs("customer-a", "key").
		WillReturnRows(sqlmock.NewRows(reservationColumns))

	_, err := repo.GetByIdempotencyKey(context.Background(), "customer-a", "key")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestRepository_ListByCustomer(t *testing.T) {
	repo, mock := newMockRepo(t)
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY r.reservation_time DESC, r.id DESC")).
		WithArgs("customer-a").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "customer_id", "availability_id", "deposit_paid", "reservation_time", "idempotency_key",
			"id", "name", "location", "owner_id", "date", "start_time", "end_time", "price", "deposit_amount",
		}).
			AddRow(int64(2), "customer-a", int64(5), false, now, nil, int64(7), "Arena", "Sukhumvit 1", "owner-1",
				date, "19:00:00", "20:00:00", 400.0, 100.0).
			AddRow(int64(1), "customer-a", int64(4), false, now.Add(-time.Hour), "k", int64(7), "Arena", "Sukhumvit 1", "owner-1",
				date, "18:00:00", "19:00:00", 400.0, 100.0))

	details, err := repo.ListByCustomer(context.Background(), "customer-a")
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, int64(2), details[0].ID)
	assert.Nil(t, details[0].IdempotencyKey)
	require.NotNil(t, details[1].IdempotencyKey)
	assert.Equal(t, "k", *details[1].IdempotencyKey)
	assert.Equal(t, "19:00", details[0].StartTime.String())
	assert.Equal(t, "owner-1", details[0].OwnerID)
}
