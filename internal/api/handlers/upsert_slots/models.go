package upsert_slots

import (
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	upsertSlots "github.com/m04kA/SMC-FieldBookingService/internal/usecase/upsert_slots"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// SlotItem один слот: date + startTime - ключ, остальное опционально
type SlotItem struct {
	Date          string            `json:"date"`      // "2024-06-10"
	StartTime     types.TimeString  `json:"startTime"` // "18:00"
	EndTime       *types.TimeString `json:"endTime,omitempty"`
	Price         *float64          `json:"price,omitempty"`
	DepositAmount *float64          `json:"depositAmount,omitempty"`
	IsReserved    *bool             `json:"isReserved,omitempty"`
}

// UpsertSlotsRequest HTTP request model
type UpsertSlotsRequest struct {
	Items []SlotItem `json:"items"`
}

// SlotResponse слот после применения
type SlotResponse struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Price         float64 `json:"price"`
	DepositAmount float64 `json:"depositAmount"`
	IsReserved    bool    `json:"isReserved"`
}

// ItemResultResponse результат одного элемента
type ItemResultResponse struct {
	Index     int           `json:"index"`
	Date      string        `json:"date"`
	StartTime string        `json:"startTime"`
	Created   bool          `json:"created"`
	Slot      *SlotResponse `json:"slot,omitempty"`
	Error     string        `json:"error,omitempty"`
	Kind      string        `json:"kind,omitempty"`
}

// UpsertSlotsResponse HTTP response model
type UpsertSlotsResponse struct {
	FieldID   int64                `json:"fieldId"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
	Results   []ItemResultResponse `json:"results"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpsertSlotsRequest) ToUseCaseRequest(principal domain.Principal, fieldID int64) (*upsertSlots.Request, error) {
	items := make([]upsertSlots.Item, 0, len(r.Items))
	for i, it := range r.Items {
		date, err := handlers.ParseDate(it.Date)
		if err != nil {
			return nil, fmt.Errorf("items[%d].date: %w", i, err)
		}
		items = append(items, upsertSlots.Item{
			Date:      date,
			StartTime: it.StartTime,
			Patch: domain.SlotPatch{
				EndTime:       it.EndTime,
				Price:         it.Price,
				DepositAmount: it.DepositAmount,
				IsReserved:    it.IsReserved,
			},
		})
	}

	return &upsertSlots.Request{
		Principal: principal,
		FieldID:   fieldID,
		Items:     items,
	}, nil
}

// Тексты ошибок, которые могут содержать детали драйвера БД
const (
	itemMsgInternal         = "internal error"
	itemMsgStoreUnavailable = "store temporarily unavailable, retry the item"
)

// itemErrorMessage текст ошибки элемента для клиента
func itemErrorMessage(kind domain.ErrorKind, err error) string {
	switch kind {
	case domain.KindInternal:
		return itemMsgInternal
	case domain.KindStoreUnavailable:
		return itemMsgStoreUnavailable
	default:
		return err.Error()
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response.
// Текст внутренних ошибок и ошибок хранилища наружу не отдается.
func FromUseCaseResponse(resp *upsertSlots.Response) *UpsertSlotsResponse {
	out := &UpsertSlotsResponse{
		FieldID: resp.FieldID,
		Results: make([]ItemResultResponse, 0, len(resp.Results)),
	}

	for _, res := range resp.Results {
		item := ItemResultResponse{
			Index:     res.Index,
			Date:      res.Date.Format(domain.DateFormat),
			StartTime: res.Start.String(),
			Created:   res.Created,
		}

		if res.Err != nil {
			kind := domain.KindOf(res.Err)
			item.Kind = string(kind)
			item.Error = itemErrorMessage(kind, res.Err)
			out.Failed++
		} else {
			out.Succeeded++
		}

		if res.Slot != nil {
			item.Slot = &SlotResponse{
				ID:            res.Slot.ID,
				Date:          res.Slot.Date.Format(domain.DateFormat),
				StartTime:     res.Slot.StartTime.String(),
				EndTime:       res.Slot.EndTime.String(),
				Price:         res.Slot.Price,
				DepositAmount: res.Slot.DepositAmount,
				IsReserved:    res.Slot.IsReserved,
			}
		}

		out.Results = append(out.Results, item)
	}

	return out
}
