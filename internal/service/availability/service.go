package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/availability/models"
)

const citySlotsNamespace = "city_slots"

// Service публичное чтение слотов доступности
type Service struct {
	slotRepo  SlotRepository
	fieldRepo FieldRepository
	cityRepo  CityRepository
	cache     BrowseCache
	logger    Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	slotRepo SlotRepository,
	fieldRepo FieldRepository,
	cityRepo CityRepository,
	cache BrowseCache,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:  slotRepo,
		fieldRepo: fieldRepo,
		cityRepo:  cityRepo,
		cache:     cache,
		logger:    logger,
	}
}

// ListForFieldAndDate возвращает слоты поля на дату, отсортированные по времени начала
func (s *Service) ListForFieldAndDate(ctx context.Context, fieldID int64, date time.Time) (*models.SlotListResponse, error) {
	date = domain.NormalizeDate(date)
	s.logger.Info("ListForFieldAndDate: field=%d, date=%s", fieldID, date.Format(domain.DateFormat))

	if fieldID <= 0 {
		return nil, fmt.Errorf("%w: fieldID must be positive", ErrInvalidInput)
	}

	if _, err := s.fieldRepo.GetByID(ctx, fieldID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("ListForFieldAndDate: field id=%d not found", fieldID)
			return nil, ErrFieldNotFound
		}
		s.logger.Error("ListForFieldAndDate: failed to get field id=%d: %v", fieldID, err)
		return nil, fmt.Errorf("%w: ListForFieldAndDate - field repository error: %w", ErrInternal, err)
	}

	slots, err := s.slotRepo.ListByFieldAndDate(ctx, fieldID, date)
	if err != nil {
		s.logger.Error("ListForFieldAndDate: repository error for field=%d: %v", fieldID, err)
		return nil, fmt.Errorf("%w: ListForFieldAndDate - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListForFieldAndDate: found %d slots for field=%d", len(slots), fieldID)
	return models.FromDomainSlotList(fieldID, date, slots), nil
}

// ListForCity возвращает слоты всех полей города с фильтрацией и сортировкой.
// Результат кэшируется до следующего изменения слотов или полей.
func (s *Service) ListForCity(ctx context.Context, req *models.CitySlotsRequest) (*models.CitySlotListResponse, error) {
	s.logger.Info("ListForCity: city=%d, onlyFree=%t, sort=%s", req.CityID, req.OnlyFree, req.Sort)

	filter := req.ToDomainFilter()
	if err := validateCityFilter(filter); err != nil {
		s.logger.Warn("ListForCity: invalid filter for city=%d: %v", req.CityID, err)
		return nil, err
	}

	var cached []*domain.SlotListing
	cacheKey, hit, err := s.cache.Get(ctx, citySlotsNamespace, filter, &cached)
	if err != nil {
		s.logger.Warn("ListForCity: cache lookup failed: %v", err)
	}
	if hit {
		return models.FromDomainListings(cached), nil
	}

	if _, err := s.cityRepo.GetByID(ctx, filter.CityID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("ListForCity: city id=%d not found", filter.CityID)
			return nil, ErrCityNotFound
		}
		s.logger.Error("ListForCity: failed to get city id=%d: %v", filter.CityID, err)
		return nil, fmt.Errorf("%w: ListForCity - city repository error: %w", ErrInternal, err)
	}

	listings, err := s.slotRepo.ListForCity(ctx, filter)
	if err != nil {
		s.logger.Error("ListForCity: repository error for city=%d: %v", filter.CityID, err)
		return nil, fmt.Errorf("%w: ListForCity - repository error: %w", ErrInternal, err)
	}

	if err := s.cache.Set(ctx, cacheKey, listings); err != nil {
		s.logger.Warn("ListForCity: failed to cache result: %v", err)
	}

	s.logger.Info("ListForCity: found %d slots for city=%d", len(listings), filter.CityID)
	return models.FromDomainListings(listings), nil
}

// validateCityFilter проверяет параметры фильтра слотов города
func validateCityFilter(f domain.CitySlotsFilter) error {
	if f.CityID <= 0 {
		return fmt.Errorf("%w: cityID must be positive", ErrInvalidInput)
	}
	if f.Sort != "" && !f.Sort.IsValid() {
		return fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, f.Sort)
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		return fmt.Errorf("%w: dateTo is before dateFrom", ErrInvalidInput)
	}
	if (f.MinPrice != nil && *f.MinPrice < 0) || (f.MaxPrice != nil && *f.MaxPrice < 0) {
		return fmt.Errorf("%w: price bounds must be non-negative", ErrInvalidInput)
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MaxPrice < *f.MinPrice {
		return fmt.Errorf("%w: maxPrice is less than minPrice", ErrInvalidInput)
	}
	return nil
}
