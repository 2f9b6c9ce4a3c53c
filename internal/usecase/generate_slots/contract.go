package generate_slots

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
	InsertIfAbsent(ctx context.Context, slots []*domain.Slot) ([]int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Retrier повторяет операцию при временной недоступности хранилища
type Retrier interface {
	Do(ctx context.Context, op func(ctx context.Context) error) error
}

// EventPublisher публикует доменные события
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v interface{}) error
}

// CacheInvalidator сбрасывает кэш просмотра
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Metrics счетчики генерации
type Metrics interface {
	RecordGeneration(generated, skipped int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
