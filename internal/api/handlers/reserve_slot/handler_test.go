package reserve_slot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	reserveSlot "github.com/m04kA/SMC-FieldBookingService/internal/usecase/reserve_slot"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	resp *reserveSlot.Response
	err  error
	got  *reserveSlot.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *reserveSlot.Request) (*reserveSlot.Response, error) {
	s.got = req
	return s.resp, s.err
}

var customer = domain.Principal{AccountID: "cust-1", Role: domain.RoleCustomer}

func doRequest(h *Handler, body string, key string, withPrincipal bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	if key != "" {
		r.Header.Set(IdempotencyKeyHeader, key)
	}
	if withPrincipal {
		r = r.WithContext(middleware.WithPrincipal(r.Context(), customer))
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandler_Created(t *testing.T) {
	uc := &stubUseCase{resp: &reserveSlot.Response{
		ReservationID:   11,
		AvailabilityID:  42,
		CustomerID:      "cust-1",
		ReservationTime: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}}
	h := NewHandler(uc, nopLogger{})

	w := doRequest(h, `{"availabilityId":42}`, "7b1c9a52-3f0e-4f43-9a43-5d2f0b7c1e11", true)
	require.Equal(t, http.StatusCreated, w.Code)

	var body ReservationResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, int64(11), body.ID)
	assert.Equal(t, int64(42), body.AvailabilityID)
	assert.False(t, body.DepositPaid)
	assert.Equal(t, "2024-06-01T12:00:00Z", body.ReservationTime)

	require.NotNil(t, uc.got.IdempotencyKey)
	assert.Equal(t, "7b1c9a52-3f0e-4f43-9a43-5d2f0b7c1e11", *uc.got.IdempotencyKey)
	assert.Equal(t, customer, uc.got.Principal)
}

func TestHandler_Replayed(t *testing.T) {
	uc := &stubUseCase{resp: &reserveSlot.Response{ReservationID: 11, AvailabilityID: 42, Replayed: true}}
	h := NewHandler(uc, nopLogger{})

	w := doRequest(h, `{"availabilityId":42}`, "", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, uc.got.IdempotencyKey)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKind domain.ErrorKind
	}{
		{name: "already reserved", err: reserveSlot.ErrSlotAlreadyReserved, wantCode: http.StatusConflict, wantKind: domain.KindSlotAlreadyReserved},
		{name: "not found", err: reserveSlot.ErrSlotNotFound, wantCode: http.StatusNotFound, wantKind: domain.KindSlotNotFound},
		{name: "owner", err: reserveSlot.ErrNotCustomer, wantCode: http.StatusForbidden, wantKind: domain.KindUnauthorized},
		{name: "invalid", err: reserveSlot.ErrInvalidInput, wantCode: http.StatusBadRequest, wantKind: domain.KindValidation},
		{name: "store down", err: fmt.Errorf("%w: tx: %w", reserveSlot.ErrInternal, domain.ErrStoreUnavailable), wantCode: http.StatusServiceUnavailable, wantKind: domain.KindStoreUnavailable},
		{name: "internal", err: reserveSlot.ErrInternal, wantCode: http.StatusInternalServerError, wantKind: domain.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, nopLogger{})

			w := doRequest(h, `{"availabilityId":42}`, "", true)
			assert.Equal(t, tt.wantCode, w.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, string(tt.wantKind), body.Kind)
		})
	}
}

func TestHandler_BadRequests(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, nopLogger{})

	assert.Equal(t, http.StatusUnauthorized, doRequest(h, `{"availabilityId":42}`, "", false).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, `{"availabilityId":"x"}`, "", true).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, `{"slot":42}`, "", true).Code)
	assert.Nil(t, uc.got)
}
