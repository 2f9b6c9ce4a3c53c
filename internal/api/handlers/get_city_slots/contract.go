package get_city_slots

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	ListForCity(ctx context.Context, req *models.CitySlotsRequest) (*models.CitySlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
