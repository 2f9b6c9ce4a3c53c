package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

const (
	msgMissingToken        = "отсутствует токен авторизации"
	msgInvalidToken        = "недействительный токен авторизации"
	msgIdentityUnavailable = "сервис авторизации временно недоступен"
)

// Authenticator проверяет bearer токен и возвращает вызывающего
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Principal, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type principalKey struct{}

// Auth извлекает токен из заголовка Authorization: Bearer <token>,
// проверяет его и кладет Principal в контекст запроса
func Auth(authenticator Authenticator, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			principal, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrStoreUnavailable):
					logger.Error("%s %s - Identity provider unavailable: %v", r.Method, r.URL.Path, err)
					handlers.RespondUnavailable(w, msgIdentityUnavailable)
				case errors.Is(err, domain.ErrUnauthorized):
					logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
					handlers.RespondUnauthorized(w, msgInvalidToken)
				default:
					logger.Error("%s %s - Failed to authenticate: %v", r.Method, r.URL.Path, err)
					handlers.RespondInternalError(w)
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// WithPrincipal кладет вызывающего в контекст
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// GetPrincipal достает вызывающего из контекста (кладется middleware Auth)
func GetPrincipal(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	return p, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
