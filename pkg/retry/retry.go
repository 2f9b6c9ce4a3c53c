// Package retry runs idempotent operations with exponential backoff.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Config параметры повторов
type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxRetries      uint64
}

// DefaultConfig значения по умолчанию
var DefaultConfig = Config{
	InitialInterval: 50 * time.Millisecond,
	MaxInterval:     time.Second,
	MaxRetries:      3,
}

// Retrier повторяет операцию, пока ошибка признается retryable
type Retrier struct {
	cfg       Config
	retryable func(error) bool
}

// New создает Retrier. retryable решает, стоит ли повторять операцию после ошибки.
func New(cfg Config, retryable func(error) bool) *Retrier {
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = DefaultConfig.InitialInterval
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = DefaultConfig.MaxInterval
	}
	return &Retrier{cfg: cfg, retryable: retryable}
}

// Do выполняет op. Ошибка, которую нельзя повторять, возвращается сразу;
// после исчерпания попыток возвращается последняя ошибка.
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.cfg.InitialInterval
	b.MaxInterval = r.cfg.MaxInterval
	b.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(b, r.cfg.MaxRetries), ctx)

	return backoff.Retry(func() error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if r.retryable == nil || !r.retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}
