package upsert_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var (
	// ErrNotOwner возвращается, когда вызывающий не владелец поля
	ErrNotOwner = fmt.Errorf("upsert_slots: not the field owner: %w", domain.ErrUnauthorized)

	// ErrFieldNotFound возвращается, когда поле не найдено
	ErrFieldNotFound = fmt.Errorf("upsert_slots: field: %w", domain.ErrNotFound)

	// ErrSlotReserved возвращается при попытке снять отметку брони со слота,
	// на который есть бронирование
	ErrSlotReserved = fmt.Errorf("upsert_slots: slot has a reservation: %w", domain.ErrSlotAlreadyReserved)

	// ErrPriceRequired возвращается при создании слота без цены
	ErrPriceRequired = fmt.Errorf("upsert_slots: price is required to create a slot: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("upsert_slots: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("upsert_slots: internal error")
)
