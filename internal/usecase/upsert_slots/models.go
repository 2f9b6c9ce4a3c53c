package upsert_slots

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// Item один слот в запросе: естественный ключ и изменяемые атрибуты
type Item struct {
	Date      time.Time        // Дата слота
	StartTime types.TimeString // Время начала, часть ключа
	Patch     domain.SlotPatch // nil-поля не меняются; при создании EndTime по умолчанию StartTime+60 мин
}

// Request модель запроса на создание/изменение слотов поля
type Request struct {
	Principal domain.Principal // Вызывающий, должен быть владельцем поля
	FieldID   int64            // ID поля
	Items     []Item           // Каждый элемент применяется в своей транзакции
}

// ItemResult результат применения одного элемента
type ItemResult struct {
	Index   int
	Date    time.Time
	Start   types.TimeString
	Slot    *domain.Slot // nil при ошибке
	Created bool
	Err     error
}

// Response модель ответа: по результату на каждый элемент в порядке запроса
type Response struct {
	FieldID int64
	Results []ItemResult
}

// Succeeded возвращает количество успешно примененных элементов
func (r *Response) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}
