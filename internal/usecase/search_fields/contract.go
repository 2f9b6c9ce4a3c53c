package search_fields

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// FieldRepository интерфейс поиска полей
type FieldRepository interface {
	Search(ctx context.Context, filter domain.FieldFilter) ([]*domain.FieldSummary, error)
}

// BrowseCache кэш результатов публичного поиска
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
