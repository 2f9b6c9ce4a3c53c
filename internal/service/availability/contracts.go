package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListByFieldAndDate(ctx context.Context, fieldID int64, date time.Time) ([]*domain.Slot, error)
	ListForCity(ctx context.Context, filter domain.CitySlotsFilter) ([]*domain.SlotListing, error)
}

// FieldRepository интерфейс репозитория полей
type FieldRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Field, error)
}

// CityRepository интерфейс репозитория городов
type CityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.City, error)
}

// BrowseCache интерфейс кэша результатов просмотра
type BrowseCache interface {
	Get(ctx context.Context, namespace string, params interface{}, dest interface{}) (key string, hit bool, err error)
	Set(ctx context.Context, key string, value interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
