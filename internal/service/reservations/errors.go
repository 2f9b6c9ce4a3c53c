package reservations

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = fmt.Errorf("reservations: reservation: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда бронирование не принадлежит клиенту
	// и не относится к полю владельца
	ErrAccessDenied = fmt.Errorf("reservations: access denied: %w", domain.ErrUnauthorized)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
