package set_day_pricing

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Request модель запроса на изменение цен всех слотов дня
type Request struct {
	Principal             domain.Principal // Вызывающий, должен быть владельцем поля
	FieldID               int64
	Date                  time.Time
	Price                 float64
	DepositAmount         float64
	ApplyOnlyToUnreserved *bool // nil = true
}

// Response модель ответа
type Response struct {
	FieldID    int64
	Date       time.Time
	UpdatedIDs []int64 // Слоты с новой ценой
	SkippedIDs []int64 // Забронированные слоты, оставленные без изменений
}
