package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestJWTVerifier_RoundTrip(t *testing.T) {
	v := NewJWTVerifier("secret")
	want := domain.Principal{AccountID: "owner-1", Email: "owner@example.com", Role: domain.RoleOwner}

	token, err := v.IssueToken(want, time.Hour)
	require.NoError(t, err)

	got, err := v.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, got.IsOwner())
	assert.False(t, got.IsCustomer())
}

func TestJWTVerifier_Rejects(t *testing.T) {
	v := NewJWTVerifier("secret")

	foreign, err := NewJWTVerifier("other").IssueToken(domain.Principal{AccountID: "x", Role: domain.RoleCustomer}, time.Hour)
	require.NoError(t, err)

	expired, err := v.IssueToken(domain.Principal{AccountID: "x", Role: domain.RoleCustomer}, -time.Minute)
	require.NoError(t, err)

	unknownRole, err := v.IssueToken(domain.Principal{AccountID: "x", Role: "superuser"}, time.Hour)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not-a-jwt",
		"wrong secret": foreign,
		"expired":      expired,
		"unknown role": unknownRole,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.Authenticate(context.Background(), token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
			assert.True(t, IsUnauthorized(err))
		})
	}
}

func TestClient_Authenticate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		switch r.Header.Get("Authorization") {
		case "Bearer good":
			_ = json.NewEncoder(w).Encode(User{
				ID:           "customer-1",
				Email:        "c@example.com",
				UserMetadata: Metadata{Role: "customer"},
			})
		case "Bearer broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "anon-key", time.Second, nopLogger{})

	p, err := c.Authenticate(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "customer-1", p.AccountID)
	assert.Equal(t, domain.RoleCustomer, p.Role)

	_, err = c.Authenticate(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = c.Authenticate(context.Background(), "broken")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Equal(t, domain.KindStoreUnavailable, domain.KindOf(err))
}
