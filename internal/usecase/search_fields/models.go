package search_fields

import (
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Request модель запроса поиска полей
type Request struct {
	CityID   *int64
	Query    string
	MinPrice *float64
	MaxPrice *float64
	Sort     string // price_asc | price_desc | name_asc | name_desc
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *Request) ToDomainFilter() domain.FieldFilter {
	return domain.FieldFilter{
		CityID:   r.CityID,
		Query:    r.Query,
		MinPrice: r.MinPrice,
		MaxPrice: r.MaxPrice,
		Sort:     domain.FieldSort(r.Sort),
	}
}

// Response модель ответа
type Response struct {
	Fields []*domain.FieldSummary
	Cached bool
}
