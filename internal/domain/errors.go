package domain

import "errors"

// ErrorKind тип ошибки, по которому вызывающая сторона решает, что делать дальше
type ErrorKind string

const (
	KindValidation          ErrorKind = "validation_error"
	KindSlotAlreadyReserved ErrorKind = "slot_already_reserved"
	KindSlotNotFound        ErrorKind = "slot_not_found"
	KindNotFound            ErrorKind = "not_found"
	KindUnauthorized        ErrorKind = "unauthorized"
	KindStoreUnavailable    ErrorKind = "store_unavailable"
	KindInternal            ErrorKind = "internal"
)

// Базовые ошибки. Пакеты объявляют свои sentinel-ошибки поверх них через %w,
// поэтому errors.Is(err, domain.ErrX) работает на любом уровне.
var (
	// ErrValidation некорректные входные данные (шаблон, цена, депозит, время)
	ErrValidation = errors.New("validation error")

	// ErrSlotAlreadyReserved слот уже забронирован
	ErrSlotAlreadyReserved = errors.New("slot already reserved")

	// ErrSlotNotFound слот не существует
	ErrSlotNotFound = errors.New("slot not found")

	// ErrNotFound прочие сущности (поле, город, бронирование) не найдены
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized нет прав на операцию (роль или владелец)
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStoreUnavailable временная недоступность хранилища, идемпотентные операции можно повторить
	ErrStoreUnavailable = errors.New("store unavailable")
)

// KindOf возвращает тип ошибки. Неизвестные ошибки считаются внутренними.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrSlotAlreadyReserved):
		return KindSlotAlreadyReserved
	case errors.Is(err, ErrSlotNotFound):
		return KindSlotNotFound
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	default:
		return KindInternal
	}
}

// IsRetryable true для ошибок, после которых идемпотентную операцию можно повторить
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
