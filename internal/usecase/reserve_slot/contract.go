package reserve_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetByIdempotencyKey(ctx context.Context, customerID, key string) (*domain.Reservation, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	MarkReserved(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует доменные события
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v interface{}) error
}

// CacheInvalidator сбрасывает кэш просмотра
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Metrics счетчики результатов бронирования
type Metrics interface {
	RecordReservation(outcome string)
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
