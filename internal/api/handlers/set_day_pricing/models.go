package set_day_pricing

import (
	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	setDayPricing "github.com/m04kA/SMC-FieldBookingService/internal/usecase/set_day_pricing"
)

// SetDayPricingRequest HTTP request model
type SetDayPricingRequest struct {
	Date                  string  `json:"date"` // "2024-06-10"
	Price                 float64 `json:"price"`
	DepositAmount         float64 `json:"depositAmount"`
	ApplyOnlyToUnreserved *bool   `json:"applyOnlyToUnreserved,omitempty"` // по умолчанию true
}

// SetDayPricingResponse HTTP response model
type SetDayPricingResponse struct {
	FieldID    int64   `json:"fieldId"`
	Date       string  `json:"date"`
	UpdatedIDs []int64 `json:"updatedIds"`
	SkippedIDs []int64 `json:"skippedIds"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SetDayPricingRequest) ToUseCaseRequest(principal domain.Principal, fieldID int64) (*setDayPricing.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &setDayPricing.Request{
		Principal:             principal,
		FieldID:               fieldID,
		Date:                  date,
		Price:                 r.Price,
		DepositAmount:         r.DepositAmount,
		ApplyOnlyToUnreserved: r.ApplyOnlyToUnreserved,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *setDayPricing.Response) *SetDayPricingResponse {
	return &SetDayPricingResponse{
		FieldID:    resp.FieldID,
		Date:       resp.Date.Format(domain.DateFormat),
		UpdatedIDs: resp.UpdatedIDs,
		SkippedIDs: resp.SkippedIDs,
	}
}
