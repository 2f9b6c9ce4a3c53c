package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Client запрашивает сессию у провайдера идентификации (GET /auth/v1/user)
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента провайдера идентификации
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Authenticate получает пользователя по токену сессии
func (c *Client) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	url := c.baseURL + "/auth/v1/user"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: failed to create request: %v", ErrInvalidResponse, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Identity provider request failed: %v", err)
		return domain.Principal{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.Principal{}, ErrInvalidToken
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if resp.StatusCode >= http.StatusInternalServerError {
			c.log.Error("Identity provider returned %d: %s", resp.StatusCode, string(body))
			return domain.Principal{}, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
		}
		return domain.Principal{}, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return domain.Principal{}, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if user.ID == "" {
		return domain.Principal{}, fmt.Errorf("%w: empty user id", ErrInvalidResponse)
	}

	return toPrincipal(user.ID, user.Email, user.role())
}
