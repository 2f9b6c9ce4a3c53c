package generate_slots

import (
	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields/models"
	generateSlots "github.com/m04kA/SMC-FieldBookingService/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	Template   []models.TemplateEntry `json:"template"`
	WindowDays int                    `json:"windowDays,omitempty"` // 0 = значение по умолчанию
	StartDate  *string                `json:"startDate,omitempty"`  // "2024-06-03", по умолчанию сегодня
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	FieldID   int64  `json:"fieldId"`
	Generated int    `json:"generated"`
	Skipped   int    `json:"skipped"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRequest(principal domain.Principal, fieldID int64) (*generateSlots.Request, error) {
	req := &generateSlots.Request{
		Principal:  principal,
		FieldID:    fieldID,
		Template:   models.ToDomainTemplate(r.Template),
		WindowDays: r.WindowDays,
	}

	if r.StartDate != nil {
		start, err := handlers.ParseDate(*r.StartDate)
		if err != nil {
			return nil, err
		}
		req.StartDate = &start
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		FieldID:   resp.FieldID,
		Generated: resp.Generated,
		Skipped:   resp.Skipped,
		From:      resp.From.Format(domain.DateFormat),
		To:        resp.To.Format(domain.DateFormat),
	}
}
