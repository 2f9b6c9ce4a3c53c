package get_field_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	ListForFieldAndDate(ctx context.Context, fieldID int64, date time.Time) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
