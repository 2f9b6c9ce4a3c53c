package search_fields

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	searchFields "github.com/m04kA/SMC-FieldBookingService/internal/usecase/search_fields"
)

// FieldSummaryResponse поле в результатах поиска
type FieldSummaryResponse struct {
	ID          int64    `json:"id"`
	CityID      int64    `json:"cityId"`
	CityName    string   `json:"cityName"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	MinPrice    *float64 `json:"minPrice,omitempty"`
	MaxPrice    *float64 `json:"maxPrice,omitempty"`
	CreatedAt   string   `json:"createdAt"`
}

// SearchFieldsResponse HTTP response model
type SearchFieldsResponse struct {
	Fields []FieldSummaryResponse `json:"fields"`
}

// ToUseCaseRequest собирает запрос из query параметров: cityId, q, minPrice, maxPrice, sort
func ToUseCaseRequest(q url.Values) (*searchFields.Request, error) {
	req := &searchFields.Request{
		Query: q.Get("q"),
		Sort:  q.Get("sort"),
	}

	if s := q.Get("cityId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cityId: %w", err)
		}
		req.CityID = &id
	}
	if s := q.Get("minPrice"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("minPrice: %w", err)
		}
		req.MinPrice = &v
	}
	if s := q.Get("maxPrice"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("maxPrice: %w", err)
		}
		req.MaxPrice = &v
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchFields.Response) *SearchFieldsResponse {
	out := &SearchFieldsResponse{Fields: make([]FieldSummaryResponse, 0, len(resp.Fields))}
	for _, f := range resp.Fields {
		out.Fields = append(out.Fields, fromDomainSummary(f))
	}
	return out
}

func fromDomainSummary(f *domain.FieldSummary) FieldSummaryResponse {
	return FieldSummaryResponse{
		ID:          f.ID,
		CityID:      f.CityID,
		CityName:    f.CityName,
		Name:        f.Name,
		Location:    f.Location,
		Description: f.Description,
		ImageURL:    f.ImageURL,
		MinPrice:    f.MinPrice,
		MaxPrice:    f.MaxPrice,
		CreatedAt:   f.CreatedAt.Format(time.RFC3339),
	}
}
