package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "ok", body: `{"name":"Arena"}`},
		{name: "unknown field", body: `{"name":"Arena","extra":1}`, wantErr: true},
		{name: "trailing object", body: `{"name":"a"}{"name":"b"}`, wantErr: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(r, &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Arena", p.Name)
		})
	}
}

func TestRespondConflict(t *testing.T) {
	w := httptest.NewRecorder()
	RespondConflict(w, "занято")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "занято", body.Error)
	assert.Equal(t, string(domain.KindSlotAlreadyReserved), body.Kind)
}

func TestRespondUnavailable(t *testing.T) {
	w := httptest.NewRecorder()
	RespondUnavailable(w, "later")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(domain.KindValidation))
	assert.Equal(t, http.StatusConflict, StatusFor(domain.KindSlotAlreadyReserved))
	assert.Equal(t, http.StatusNotFound, StatusFor(domain.KindSlotNotFound))
	assert.Equal(t, http.StatusNotFound, StatusFor(domain.KindNotFound))
	assert.Equal(t, http.StatusForbidden, StatusFor(domain.KindUnauthorized))
	assert.Equal(t, http.StatusServiceUnavailable, StatusFor(domain.KindStoreUnavailable))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(domain.KindInternal))
}
