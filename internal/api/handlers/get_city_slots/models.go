package get_city_slots

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/availability/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров:
// dateFrom, dateTo (YYYY-MM-DD), minPrice, maxPrice, onlyFree, sort
func ToServiceRequest(cityID int64, q url.Values) (*models.CitySlotsRequest, error) {
	req := &models.CitySlotsRequest{
		CityID: cityID,
		Sort:   q.Get("sort"),
	}

	if s := q.Get("dateFrom"); s != "" {
		d, err := handlers.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("dateFrom: %w", err)
		}
		req.DateFrom = &d
	}
	if s := q.Get("dateTo"); s != "" {
		d, err := handlers.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("dateTo: %w", err)
		}
		req.DateTo = &d
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
	if s := q.Get("onlyFree"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("onlyFree: %w", err)
		}
		req.OnlyFree = v
	}

	return req, nil
}
