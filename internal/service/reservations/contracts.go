package reservations

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ReservationDetail, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.ReservationDetail, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.ReservationDetail, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
