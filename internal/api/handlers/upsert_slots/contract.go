package upsert_slots

import (
	"context"

	upsertSlots "github.com/m04kA/SMC-FieldBookingService/internal/usecase/upsert_slots"
)

type UpsertSlotsUseCase interface {
	Execute(ctx context.Context, req *upsertSlots.Request) (*upsertSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
