package fields

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/broker"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields/models"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

var (
	owner    = domain.Principal{AccountID: "owner-1", Role: domain.RoleOwner}
	stranger = domain.Principal{AccountID: "owner-2", Role: domain.RoleOwner}
	customer = domain.Principal{AccountID: "customer-1", Role: domain.RoleCustomer}
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeFieldRepo struct {
	mu     sync.Mutex
	nextID int64
	fields map[int64]*domain.Field
}

func newFakeFieldRepo() *fakeFieldRepo {
	return &fakeFieldRepo{fields: map[int64]*domain.Field{}}
}

func (r *fakeFieldRepo) Create(_ context.Context, f *domain.Field) (*domain.Field, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	created := *f
	created.ID = r.nextID
	r.fields[created.ID] = &created
	return &created, nil
}

func (r *fakeFieldRepo) Update(_ context.Context, f *domain.Field) (*domain.Field, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.fields[f.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	updated := *f
	r.fields[f.ID] = &updated
	return &updated, nil
}

func (r *fakeFieldRepo) GetByID(_ context.Context, id int64) (*domain.Field, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.fields[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFieldRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Field, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Field
	for _, f := range r.fields {
		if f.OwnerID == ownerID {
			out = append(out, f)
		}
	}
	return out, nil
}

type fakeCityRepo struct{}

func (fakeCityRepo) List(context.Context) ([]*domain.City, error) {
	return []*domain.City{{ID: 1, Name: "Bangkok"}, {ID: 2, Name: "Chiang Mai"}}, nil
}

type fakeSlotRepo struct {
	inserted []*domain.Slot
}

func (r *fakeSlotRepo) InsertIfAbsent(_ context.Context, slots []*domain.Slot) ([]int64, error) {
	ids := make([]int64, 0, len(slots))
	for i, s := range slots {
		r.inserted = append(r.inserted, s)
		ids = append(ids, int64(i+1))
	}
	return ids, nil
}

type recorder struct {
	invalidations int
	published     []string
	events        []broker.SlotsGenerated
	generated     int
	skipped       int
}

func (r *recorder) Invalidate(context.Context) error {
	r.invalidations++
	return nil
}

func (r *recorder) PublishJSON(_ context.Context, key string, v interface{}) error {
	r.published = append(r.published, key)
	if e, ok := v.(broker.SlotsGenerated); ok {
		r.events = append(r.events, e)
	}
	return nil
}

func (r *recorder) RecordGeneration(generated, skipped int) {
	r.generated += generated
	r.skipped += skipped
}

func newTestService() (*Service, *fakeFieldRepo, *fakeSlotRepo, *recorder) {
	return newLimitedService(domain.MaxGenerationWindowDays)
}

func newLimitedService(maxWindowDays int) (*Service, *fakeFieldRepo, *fakeSlotRepo, *recorder) {
	fields := newFakeFieldRepo()
	slots := &fakeSlotRepo{}
	rec := &recorder{}
	svc := NewService(fields, fakeCityRepo{}, slots, rec, rec, rec, inlineTx{}, nopLogger{}, 30, maxWindowDays)
	svc.timeProvider = fixedTime{t: time.Date(2024, 6, 5, 14, 30, 0, 0, time.UTC)}
	return svc, fields, slots, rec
}

func mondayEvening() []models.TemplateEntry {
	return []models.TemplateEntry{{
		DayOfWeek:     int(time.Monday),
		StartTime:     types.MustTimeString("18:00"),
		EndTime:       types.MustTimeString("19:00"),
		Price:         1200,
		DepositAmount: 300,
	}}
}

func TestService_Create_WithTemplate(t *testing.T) {
	svc, _, slots, cache := newTestService()

	resp, err := svc.Create(context.Background(), owner, &models.CreateFieldRequest{
		CityID:   1,
		Name:     "Arena 7",
		Location: "Sukhumvit 71",
		Template: mondayEvening(),
	})
	require.NoError(t, err)

	assert.Equal(t, "owner-1", resp.Field.OwnerID)
	require.NotNil(t, resp.Generation)
	assert.Equal(t, 4, resp.Generation.Generated)
	assert.Equal(t, 0, resp.Generation.Skipped)
	assert.Equal(t, "2024-06-05", resp.Generation.From)
	assert.Equal(t, "2024-07-04", resp.Generation.To)

	require.Len(t, slots.inserted, 4)
	assert.Equal(t, "2024-06-10", slots.inserted[0].Date.Format(domain.DateFormat))
	assert.Equal(t, resp.Field.ID, slots.inserted[0].FieldID)
	assert.Equal(t, 1, cache.invalidations)

	// генерация при создании поля учитывается так же, как отдельный запуск генерации
	assert.Equal(t, 4, cache.generated)
	assert.Equal(t, []string{"slots.generated"}, cache.published)
	require.Len(t, cache.events, 1)
	assert.Equal(t, resp.Field.ID, cache.events[0].FieldID)
	assert.Equal(t, "2024-06-05", cache.events[0].From)
	assert.Equal(t, 30, cache.events[0].Days)
	assert.Equal(t, 4, cache.events[0].Generated)
}

func TestService_Create_WithoutTemplate_NoGenerationEvent(t *testing.T) {
	svc, _, slots, rec := newTestService()

	resp, err := svc.Create(context.Background(), owner, &models.CreateFieldRequest{
		CityID:   1,
		Name:     "Arena 8",
		Location: "Sukhumvit 71",
	})
	require.NoError(t, err)

	assert.Nil(t, resp.Generation)
	assert.Empty(t, slots.inserted)
	assert.Empty(t, rec.published)
	assert.Zero(t, rec.generated)
}

func TestService_Create_ConfiguredWindowLimit(t *testing.T) {
	svc, fields, slots, rec := newLimitedService(14)

	_, err := svc.Create(context.Background(), owner, &models.CreateFieldRequest{
		CityID:     1,
		Name:       "Arena 9",
		Location:   "Sukhumvit 71",
		Template:   mondayEvening(),
		WindowDays: ptr.Ptr(15),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, fields.fields)
	assert.Empty(t, slots.inserted)

	// окно по умолчанию (30) ограничивается настроенным лимитом
	resp, err := svc.Create(context.Background(), owner, &models.CreateFieldRequest{
		CityID:   1,
		Name:     "Arena 9",
		Location: "Sukhumvit 71",
		Template: mondayEvening(),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Generation)
	assert.Equal(t, "2024-06-18", resp.Generation.To)
	assert.Equal(t, 2, resp.Generation.Generated)
	assert.Equal(t, 2, rec.generated)
}

func TestService_Create_Rejects(t *testing.T) {
	badTemplate := mondayEvening()
	badTemplate[0].DepositAmount = 1200

	tests := []struct {
		name      string
		principal domain.Principal
		req       *models.CreateFieldRequest
		want      error
	}{
		{
			name:      "customer",
			principal: customer,
			req:       &models.CreateFieldRequest{CityID: 1, Name: "A", Location: "B"},
			want:      ErrAccessDenied,
		},
		{
			name:      "blank name",
			principal: owner,
			req:       &models.CreateFieldRequest{CityID: 1, Location: "B"},
			want:      ErrInvalidInput,
		},
		{
			name:      "deposit equals price",
			principal: owner,
			req:       &models.CreateFieldRequest{CityID: 1, Name: "A", Location: "B", Template: badTemplate},
			want:      ErrInvalidInput,
		},
		{
			name:      "window too long",
			principal: owner,
			req:       &models.CreateFieldRequest{CityID: 1, Name: "A", Location: "B", Template: mondayEvening(), WindowDays: ptr.Ptr(365)},
			want:      ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, fields, slots, _ := newTestService()

			_, err := svc.Create(context.Background(), tt.principal, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, fields.fields)
			assert.Empty(t, slots.inserted)
		})
	}
}

func TestService_Update(t *testing.T) {
	svc, fields, _, cache := newTestService()
	created, err := fields.Create(context.Background(), &domain.Field{OwnerID: "owner-1", CityID: 1, Name: "Arena", Location: "Soi 5"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), stranger, created.ID, &models.UpdateFieldRequest{Name: ptr.Ptr("Mine now")})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	_, err = svc.Update(context.Background(), owner, created.ID, &models.UpdateFieldRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := svc.Update(context.Background(), owner, created.ID, &models.UpdateFieldRequest{Name: ptr.Ptr("Arena Pro")})
	require.NoError(t, err)
	assert.Equal(t, "Arena Pro", resp.Name)
	assert.Equal(t, "Soi 5", resp.Location)
	assert.Equal(t, 1, cache.invalidations)

	_, err = svc.Update(context.Background(), owner, 404, &models.UpdateFieldRequest{Name: ptr.Ptr("x")})
	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestService_ListMine(t *testing.T) {
	svc, fields, _, _ := newTestService()
	_, _ = fields.Create(context.Background(), &domain.Field{OwnerID: "owner-1", CityID: 1, Name: "A", Location: "x"})
	_, _ = fields.Create(context.Background(), &domain.Field{OwnerID: "owner-2", CityID: 1, Name: "B", Location: "y"})

	resp, err := svc.ListMine(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "A", resp.Fields[0].Name)

	_, err = svc.ListMine(context.Background(), customer)
	assert.ErrorIs(t, err, ErrAccessDenied)

	cities, err := svc.ListCities(context.Background())
	require.NoError(t, err)
	assert.Len(t, cities.Cities, 2)
}
