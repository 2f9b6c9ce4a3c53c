package generate_slots

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
	"github.com/m04kA/SMC-FieldBookingService/pkg/retry"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeFields map[int64]*domain.Field

func (f fakeFields) GetByID(_ context.Context, id int64) (*domain.Field, error) {
	if field, ok := f[id]; ok {
		return field, nil
	}
	return nil, domain.ErrNotFound
}

type slotKey struct {
	fieldID int64
	date    string
	start   types.TimeString
}

type fakeSlots struct {
	mu        sync.Mutex
	slots     map[slotKey]*domain.Slot
	failTimes int
	calls     int
}

func newFakeSlots() *fakeSlots {
	return &fakeSlots{slots: map[slotKey]*domain.Slot{}}
}

func (f *fakeSlots) InsertIfAbsent(_ context.Context, slots []*domain.Slot) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failTimes > 0 {
		f.failTimes--
		return nil, fmt.Errorf("connection reset: %w", domain.ErrStoreUnavailable)
	}

	var ids []int64
	for _, s := range slots {
		k := slotKey{s.FieldID, s.Date.Format(domain.DateFormat), s.StartTime}
		if _, exists := f.slots[k]; exists {
			continue
		}
		cp := *s
		cp.ID = int64(len(f.slots) + 1)
		f.slots[k] = &cp
		ids = append(ids, cp.ID)
	}
	return ids, nil
}

type recorder struct {
	published     []string
	invalidations int
	generated     int
	skipped       int
}

func (r *recorder) PublishJSON(_ context.Context, key string, _ interface{}) error {
	r.published = append(r.published, key)
	return nil
}

func (r *recorder) Invalidate(context.Context) error {
	r.invalidations++
	return nil
}

func (r *recorder) RecordGeneration(generated, skipped int) {
	r.generated += generated
	r.skipped += skipped
}

var (
	owner    = domain.Principal{AccountID: "owner-1", Role: domain.RoleOwner}
	stranger = domain.Principal{AccountID: "owner-2", Role: domain.RoleOwner}
	customer = domain.Principal{AccountID: "customer-1", Role: domain.RoleCustomer}

	// 2024-06-05 is a Wednesday
	wednesday = time.Date(2024, 6, 5, 9, 15, 0, 0, time.UTC)
)

func newTestUseCase(slots *fakeSlots, rec *recorder) *UseCase {
	return newLimitedUseCase(slots, rec, domain.MaxGenerationWindowDays)
}

func newLimitedUseCase(slots *fakeSlots, rec *recorder, maxWindowDays int) *UseCase {
	retrier := retry.New(retry.Config{
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
		MaxRetries:      3,
	}, domain.IsRetryable)

	uc := NewUseCase(
		fakeFields{1: {ID: 1, OwnerID: "owner-1", Name: "Arena"}},
		slots,
		inlineTx{},
		retrier,
		rec,
		rec,
		rec,
		nopLogger{},
		domain.DefaultGenerationWindowDays,
		maxWindowDays,
	)
	uc.timeProvider = fixedTime{t: wednesday}
	return uc
}

func mondayTemplate(price float64) domain.WeeklyTemplate {
	return domain.WeeklyTemplate{{
		DayOfWeek:     int(time.Monday),
		StartTime:     types.MustTimeString("18:00"),
		EndTime:       types.MustTimeString("19:00"),
		Price:         price,
		DepositAmount: 200,
	}}
}

func TestUseCase_Generate_MondaysInThirtyDays(t *testing.T) {
	slots := newFakeSlots()
	rec := &recorder{}
	uc := newTestUseCase(slots, rec)

	resp, err := uc.Execute(context.Background(), &Request{Principal: owner, FieldID: 1, Template: mondayTemplate(1000)})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Generated)
	assert.Equal(t, 0, resp.Skipped)
	assert.Equal(t, "2024-06-05", resp.From.Format(domain.DateFormat))
	assert.Equal(t, "2024-07-04", resp.To.Format(domain.DateFormat))

	for _, date := range []string{"2024-06-10", "2024-06-17", "2024-06-24", "2024-07-01"} {
		s, ok := slots.slots[slotKey{1, date, types.MustTimeString("18:00")}]
		require.True(t, ok, date)
		assert.False(t, s.IsReserved)
		assert.Equal(t, types.MustTimeString("19:00"), s.EndTime)
	}

	assert.Equal(t, []string{"slots.generated"}, rec.published)
	assert.Equal(t, 1, rec.invalidations)
	assert.Equal(t, 4, rec.generated)
}

func TestUseCase_Generate_IsIdempotent(t *testing.T) {
	slots := newFakeSlots()
	rec := &recorder{}
	uc := newTestUseCase(slots, rec)

	_, err := uc.Execute(context.Background(), &Request{Principal: owner, FieldID: 1, Template: mondayTemplate(1000)})
	require.NoError(t, err)

	// повторный запуск с другой ценой не перезаписывает существующие слоты
	again, err := uc.Execute(context.Background(), &Request{Principal: owner, FieldID: 1, Template: mondayTemplate(1500)})
	require.NoError(t, err)

	assert.Equal(t, 0, again.Generated)
	assert.Equal(t, 4, again.Skipped)
	assert.Len(t, slots.slots, 4)
	for _, s := range slots.slots {
		assert.Equal(t, 1000.0, s.Price)
	}
	assert.Equal(t, 1, rec.invalidations)
	assert.Equal(t, 4, rec.skipped)
}

func TestUseCase_Generate_ShortWindow(t *testing.T) {
	slots := newFakeSlots()
	uc := newTestUseCase(slots, &recorder{})

	resp, err := uc.Execute(context.Background(), &Request{
		Principal:  owner,
		FieldID:    1,
		Template:   mondayTemplate(1000),
		WindowDays: 6,
		StartDate:  ptr.Ptr(time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	// 11..16 июня не содержит понедельника
	assert.Equal(t, 0, resp.Generated)
	assert.Equal(t, "2024-06-16", resp.To.Format(domain.DateFormat))
}

func TestUseCase_Generate_RetriesTransientFailures(t *testing.T) {
	slots := newFakeSlots()
	slots.failTimes = 2
	uc := newTestUseCase(slots, &recorder{})

	resp, err := uc.Execute(context.Background(), &Request{Principal: owner, FieldID: 1, Template: mondayTemplate(1000)})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Generated)
	assert.Equal(t, 3, slots.calls)
}

func TestUseCase_Generate_Rejects(t *testing.T) {
	overlapping := append(mondayTemplate(1000), mondayTemplate(900)...)
	badDeposit := mondayTemplate(1000)
	badDeposit[0].DepositAmount = 1000

	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{name: "customer", req: &Request{Principal: customer, FieldID: 1, Template: mondayTemplate(1000)}, want: ErrNotOwner},
		{name: "other owner", req: &Request{Principal: stranger, FieldID: 1, Template: mondayTemplate(1000)}, want: ErrNotOwner},
		{name: "missing field", req: &Request{Principal: owner, FieldID: 2, Template: mondayTemplate(1000)}, want: ErrFieldNotFound},
		{name: "empty template", req: &Request{Principal: owner, FieldID: 1}, want: ErrInvalidInput},
		{name: "duplicate entry", req: &Request{Principal: owner, FieldID: 1, Template: overlapping}, want: ErrInvalidInput},
		{name: "deposit equals price", req: &Request{Principal: owner, FieldID: 1, Template: badDeposit}, want: ErrInvalidInput},
		{name: "window too long", req: &Request{Principal: owner, FieldID: 1, Template: mondayTemplate(1000), WindowDays: 91}, want: ErrInvalidInput},
		{
			name: "start in the past",
			req: &Request{
				Principal: owner,
				FieldID:   1,
				Template:  mondayTemplate(1000),
				StartDate: ptr.Ptr(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
			},
			want: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := newFakeSlots()
			rec := &recorder{}
			uc := newTestUseCase(slots, rec)

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, slots.slots)
			assert.Empty(t, rec.published)
		})
	}
}

func TestUseCase_Generate_ConfiguredWindowLimit(t *testing.T) {
	slots := newFakeSlots()
	rec := &recorder{}
	uc := newLimitedUseCase(slots, rec, 14)

	_, err := uc.Execute(context.Background(), &Request{
		Principal:  owner,
		FieldID:    1,
		Template:   mondayTemplate(1000),
		WindowDays: 15,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, slots.slots)

	// окно по умолчанию (30) ограничивается настроенным лимитом
	resp, err := uc.Execute(context.Background(), &Request{Principal: owner, FieldID: 1, Template: mondayTemplate(1000)})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-18", resp.To.Format(domain.DateFormat))
	assert.Equal(t, 2, resp.Generated)
}
