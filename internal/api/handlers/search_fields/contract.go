package search_fields

import (
	"context"

	searchFields "github.com/m04kA/SMC-FieldBookingService/internal/usecase/search_fields"
)

type SearchFieldsUseCase interface {
	Execute(ctx context.Context, req *searchFields.Request) (*searchFields.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
