package reserve_slot

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Request модель запроса на бронирование слота
type Request struct {
	Principal      domain.Principal // Вызывающий, должен быть клиентом
	AvailabilityID int64            // ID слота
	IdempotencyKey *string          // UUID из заголовка Idempotency-Key (опционально)
}

// Response модель ответа с бронированием
type Response struct {
	ReservationID   int64
	AvailabilityID  int64
	CustomerID      string
	DepositPaid     bool
	ReservationTime time.Time
	Replayed        bool // true, если возвращено ранее созданное бронирование по тому же ключу
}
