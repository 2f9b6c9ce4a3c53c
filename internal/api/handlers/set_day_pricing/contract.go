package set_day_pricing

import (
	"context"

	setDayPricing "github.com/m04kA/SMC-FieldBookingService/internal/usecase/set_day_pricing"
)

type SetDayPricingUseCase interface {
	Execute(ctx context.Context, req *setDayPricing.Request) (*setDayPricing.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
