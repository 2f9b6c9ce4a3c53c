package search_fields

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

const fieldsNamespace = "fields"

// UseCase use case для публичного поиска полей
type UseCase struct {
	fieldRepo FieldRepository
	cache     BrowseCache
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(fieldRepo FieldRepository, cache BrowseCache, logger Logger) *UseCase {
	return &UseCase{
		fieldRepo: fieldRepo,
		cache:     cache,
		logger:    logger,
	}
}

// Execute ищет поля по городу, тексту и диапазону цен.
// Ошибки кэша не прерывают запрос, результат берется из репозитория.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SearchFields: query=%q, sort=%s", req.Query, req.Sort)

	// 1. Валидация и нормализация фильтра
	filter := req.ToDomainFilter()
	if err := validateFilter(filter); err != nil {
		uc.logger.Warn("SearchFields: validation failed: %v", err)
		return nil, err
	}
	filter = normalizeFilter(filter)

	// 2. Кэш
	var cached []*domain.FieldSummary
	cacheKey, hit, err := uc.cache.Get(ctx, fieldsNamespace, filter, &cached)
	if err != nil {
		uc.logger.Warn("SearchFields: cache lookup failed: %v", err)
	}
	if hit {
		return &Response{Fields: cached, Cached: true}, nil
	}

	// 3. Репозиторий
	fields, err := uc.fieldRepo.Search(ctx, filter)
	if err != nil {
		uc.logger.Error("SearchFields: repository error: %v", err)
		return nil, fmt.Errorf("%w: search: %w", ErrInternal, err)
	}

	if err := uc.cache.Set(ctx, cacheKey, fields); err != nil {
		uc.logger.Warn("SearchFields: failed to cache result: %v", err)
	}

	uc.logger.Info("SearchFields: found %d fields", len(fields))
	return &Response{Fields: fields}, nil
}
