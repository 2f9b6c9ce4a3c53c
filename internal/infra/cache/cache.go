// Package cache stores browse query results in Redis. Entries are keyed by a
// global version number, so any catalogue mutation invalidates all of them
// with a single INCR.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
)

var (
	// ErrCacheUnavailable возвращается при ошибках обращения к Redis
	ErrCacheUnavailable = errors.New("cache: redis unavailable")

	// ErrEncode возвращается, когда значение или параметры не сериализуются
	ErrEncode = errors.New("cache: failed to encode value")
)

// BrowseCache кэш результатов поиска полей
type BrowseCache struct {
	client  *redis.Client
	prefix  string
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewBrowseCache создает кэш поверх клиента Redis. metrics может быть nil.
func NewBrowseCache(client *redis.Client, prefix string, ttl time.Duration, m *metrics.Metrics) *BrowseCache {
	return &BrowseCache{
		client:  client,
		prefix:  prefix,
		ttl:     ttl,
		metrics: m,
	}
}

// NewRedisClient создает клиент и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrCacheUnavailable, addr, err)
	}
	return client, nil
}

// Get читает значение в dest. Возвращает false при промахе.
// Возвращаемый ключ привязан к версии, прочитанной до запроса: результат,
// посчитанный после промаха, сохраняется через Set под этим ключом, и
// Invalidate, случившийся между ними, делает запись недоступной.
func (c *BrowseCache) Get(ctx context.Context, namespace string, params interface{}, dest interface{}) (string, bool, error) {
	key, err := c.key(ctx, namespace, params)
	if err != nil {
		return "", false, err
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.metrics.RecordCacheLookup(false)
		return key, false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: get %s: %v", ErrCacheUnavailable, key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// поврежденная запись считается промахом, ее перезапишет следующий Set
		c.metrics.RecordCacheLookup(false)
		return key, false, nil
	}

	c.metrics.RecordCacheLookup(true)
	return key, true, nil
}

// Set сохраняет значение с TTL под ключом, полученным из Get.
// Пустой ключ (Get завершился ошибкой) ничего не записывает.
func (c *BrowseCache) Set(ctx context.Context, key string, value interface{}) error {
	if key == "" {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCacheUnavailable, key, err)
	}
	return nil
}

// Invalidate делает все текущие записи недоступными, увеличивая версию
func (c *BrowseCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.versionKey()).Err(); err != nil {
		return fmt.Errorf("%w: incr version: %v", ErrCacheUnavailable, err)
	}
	return nil
}

func (c *BrowseCache) versionKey() string {
	return c.prefix + ":browse:version"
}

func (c *BrowseCache) key(ctx context.Context, namespace string, params interface{}) (string, error) {
	version, err := c.client.Get(ctx, c.versionKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: get version: %v", ErrCacheUnavailable, err)
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("%w: params: %v", ErrEncode, err)
	}
	sum := sha1.Sum(raw)

	return fmt.Sprintf("%s:browse:%s:v%d:%x", c.prefix, namespace, version, sum[:]), nil
}

// Noop кэш, используемый когда Redis выключен
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}, interface{}) (string, bool, error) {
	return "", false, nil
}

func (Noop) Set(context.Context, string, interface{}) error { return nil }

func (Noop) Invalidate(context.Context) error { return nil }
