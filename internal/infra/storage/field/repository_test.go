package field

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

func TestRepository_Create_UnknownCity(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO fields")).
		WillReturnError(&pq.Error{Code: "23503"})

	_, err := repo.Create(context.Background(), &domain.Field{OwnerID: "owner-1", CityID: 99, Name: "Arena", Location: "x"})
	assert.ErrorIs(t, err, ErrCityNotFound)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM fields WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(fieldColumns))

	_, err := repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestRepository_Search(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("(f.name ILIKE $2 OR f.location ILIKE $3)")).
		WithArgs(int64(1), "%arena%", "%arena%", 300.0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "owner_id", "city_id", "name", "location", "description", "image_url",
			"created_at", "updated_at", "name", "min_price", "max_price",
		}).
			AddRow(int64(7), "owner-1", int64(1), "Arena", "Sukhumvit 1", nil, nil, now, now, "Bangkok", 300.0, 500.0))

	res, err := repo.Search(context.Background(), domain.FieldFilter{
		CityID:   ptr.Ptr(int64(1)),
		Query:    " arena ",
		MinPrice: ptr.Ptr(300.0),
		Sort:     domain.FieldSortPriceAsc,
	})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Bangkok", res[0].CityName)
	require.NotNil(t, res[0].MinPrice)
	assert.Equal(t, 300.0, *res[0].MinPrice)
	assert.Equal(t, 500.0, *res[0].MaxPrice)
	assert.Nil(t, res[0].Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_off\\`, escapeLike(`100%_off\`))
}
