package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Claims claims токена доступа
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTVerifier проверяет HS256 токены локально, без обращения к провайдеру
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier создает верификатор с общим секретом
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Authenticate разбирает и проверяет токен, возвращая вызывающего
func (v *JWTVerifier) Authenticate(_ context.Context, token string) (domain.Principal, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return domain.Principal{}, ErrInvalidToken
	}

	return toPrincipal(claims.Subject, claims.Email, claims.Role)
}

// IssueToken подписывает токен. Используется в тестах и локальной разработке,
// в production токены выпускает провайдер идентификации.
func (v *JWTVerifier) IssueToken(p domain.Principal, ttl time.Duration) (string, error) {
	claims := Claims{
		Email: p.Email,
		Role:  string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.AccountID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func toPrincipal(accountID, email, role string) (domain.Principal, error) {
	r := domain.Role(strings.ToLower(strings.TrimSpace(role)))
	if !r.IsValid() {
		return domain.Principal{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return domain.Principal{
		AccountID: accountID,
		Email:     email,
		Role:      r,
	}, nil
}

// IsUnauthorized true, если ошибка означает отказ в аутентификации, а не сбой провайдера
func IsUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}
