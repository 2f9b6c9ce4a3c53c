package set_day_pricing

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// FieldRepository интерфейс репозитория полей
type FieldRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Field, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListByFieldAndDate(ctx context.Context, fieldID int64, date time.Time) ([]*domain.Slot, error)
	UpdatePricing(ctx context.Context, ids []int64, price, deposit float64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Retrier повторяет операцию при временной недоступности хранилища
type Retrier interface {
	Do(ctx context.Context, op func(ctx context.Context) error) error
}

// CacheInvalidator сбрасывает кэш просмотра
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
