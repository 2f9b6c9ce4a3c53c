package generate_slots

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Request модель запроса на генерацию слотов
type Request struct {
	Principal  domain.Principal      // Вызывающий, должен быть владельцем поля
	FieldID    int64                 // ID поля
	Template   domain.WeeklyTemplate // Недельный шаблон
	WindowDays int                   // Длина окна в днях, 0 = значение по умолчанию
	StartDate  *time.Time            // Первый день окна, nil = сегодня
}

// Response модель ответа с итогом генерации
type Response struct {
	FieldID   int64
	Generated int       // Вставлено новых слотов
	Skipped   int       // Уже существовали и не изменялись
	From      time.Time // Первый день окна
	To        time.Time // Последний день окна включительно
}
