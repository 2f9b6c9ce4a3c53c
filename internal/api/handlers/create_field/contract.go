package create_field

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields/models"
)

type FieldService interface {
	Create(ctx context.Context, principal domain.Principal, req *models.CreateFieldRequest) (*models.CreateFieldResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
