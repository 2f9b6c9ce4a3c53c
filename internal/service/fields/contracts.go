package fields

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// FieldRepository интерфейс репозитория полей
type FieldRepository interface {
	Create(ctx context.Context, field *domain.Field) (*domain.Field, error)
	Update(ctx context.Context, field *domain.Field) (*domain.Field, error)
	GetByID(ctx context.Context, id int64) (*domain.Field, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Field, error)
}

// CityRepository интерфейс репозитория городов
type CityRepository interface {
	List(ctx context.Context) ([]*domain.City, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	InsertIfAbsent(ctx context.Context, slots []*domain.Slot) ([]int64, error)
}

// CacheInvalidator сбрасывает кэш просмотра после изменения каталога
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// EventPublisher публикует события о генерации слотов
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v interface{}) error
}

// Metrics счетчики генерации слотов
type Metrics interface {
	RecordGeneration(generated, skipped int)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
