package fields

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/broker"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/fields/models"
)

// Service каталог полей и городов
type Service struct {
	fieldRepo         FieldRepository
	cityRepo          CityRepository
	slotRepo          SlotRepository
	cache             CacheInvalidator
	publisher         EventPublisher
	metrics           Metrics
	txManager         TransactionManager
	timeProvider      TimeProvider
	logger            Logger
	defaultWindowDays int
	maxWindowDays     int
}

// NewService создает новый экземпляр сервиса полей.
// defaultWindowDays используется, если при создании поля окно генерации не указано;
// maxWindowDays ограничивает окно сверху.
func NewService(
	fieldRepo FieldRepository,
	cityRepo CityRepository,
	slotRepo SlotRepository,
	cache CacheInvalidator,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
	defaultWindowDays int,
	maxWindowDays int,
) *Service {
	maxWindowDays = domain.EffectiveMaxWindow(maxWindowDays)
	if defaultWindowDays <= 0 {
		defaultWindowDays = domain.DefaultGenerationWindowDays
	}
	if defaultWindowDays > maxWindowDays {
		defaultWindowDays = maxWindowDays
	}
	return &Service{
		fieldRepo:         fieldRepo,
		cityRepo:          cityRepo,
		slotRepo:          slotRepo,
		cache:             cache,
		publisher:         publisher,
		metrics:           metrics,
		txManager:         txManager,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
		defaultWindowDays: defaultWindowDays,
		maxWindowDays:     maxWindowDays,
	}
}

// ListCities возвращает справочник городов
func (s *Service) ListCities(ctx context.Context) (*models.CityListResponse, error) {
	cities, err := s.cityRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListCities: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCities - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainCityList(cities), nil
}

// GetByID возвращает поле. Доступно без аутентификации.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.FieldResponse, error) {
	s.logger.Info("GetByID: fetching field id=%d", id)

	field, err := s.getField(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainField(field), nil
}

// ListMine возвращает поля владельца
func (s *Service) ListMine(ctx context.Context, principal domain.Principal) (*models.FieldListResponse, error) {
	if !principal.IsOwner() {
		s.logger.Warn("ListMine: account=%s is not an owner", principal.AccountID)
		return nil, ErrAccessDenied
	}

	fields, err := s.fieldRepo.ListByOwner(ctx, principal.AccountID)
	if err != nil {
		s.logger.Error("ListMine: repository error for owner=%s: %v", principal.AccountID, err)
		return nil, fmt.Errorf("%w: ListMine - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListMine: found %d fields for owner=%s", len(fields), principal.AccountID)
	return models.FromDomainFieldList(fields), nil
}

// Create создает поле владельца. Если передан недельный шаблон, в той же транзакции
// генерируются слоты на окно от сегодняшнего дня.
func (s *Service) Create(ctx context.Context, principal domain.Principal, req *models.CreateFieldRequest) (*models.CreateFieldResponse, error) {
	s.logger.Info("Create: owner=%s, city=%d, name=%q, templateEntries=%d",
		principal.AccountID, req.CityID, req.Name, len(req.Template))

	// 1. Только владелец может создавать поля
	if !principal.IsOwner() {
		s.logger.Warn("Create: account=%s is not an owner", principal.AccountID)
		return nil, ErrAccessDenied
	}

	// 2. Валидация поля и шаблона до любых записей
	field := req.ToDomainField(principal.AccountID)
	if err := field.Validate(); err != nil {
		s.logger.Warn("Create: invalid field: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	template := req.ToDomainTemplate()
	windowDays := s.defaultWindowDays
	if req.WindowDays != nil {
		windowDays = *req.WindowDays
	}
	if template != nil {
		if err := template.Validate(); err != nil {
			s.logger.Warn("Create: invalid template: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		if err := domain.ValidateWindow(windowDays, s.maxWindowDays); err != nil {
			s.logger.Warn("Create: invalid window: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	from := domain.NormalizeDate(s.timeProvider.Now())

	var (
		created    *domain.Field
		generation *models.GenerationSummary
	)

	// 3. Поле и его слоты создаются атомарно
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.fieldRepo.Create(txCtx, field)
		if err != nil {
			if errors.Is(err, fieldRepo.ErrCityNotFound) {
				s.logger.Warn("Create: city id=%d not found", req.CityID)
				return ErrCityNotFound
			}
			s.logger.Error("Create: failed to create field: %v", err)
			return fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
		}

		if template == nil {
			return nil
		}

		slots := template.Expand(created.ID, from, windowDays)
		ids, err := s.slotRepo.InsertIfAbsent(txCtx, slots)
		if err != nil {
			s.logger.Error("Create: failed to generate slots for field id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: Create - slot generation error: %w", ErrInternal, err)
		}

		generation = &models.GenerationSummary{
			Generated: len(ids),
			Skipped:   len(slots) - len(ids),
			From:      from.Format(domain.DateFormat),
			To:        from.AddDate(0, 0, windowDays-1).Format(domain.DateFormat),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, "Create")

	if generation != nil {
		s.recordGeneration(ctx, created.ID, from, windowDays, generation)
		s.logger.Info("Create: field id=%d created with %d slots (%s..%s)",
			created.ID, generation.Generated, generation.From, generation.To)
	} else {
		s.logger.Info("Create: field id=%d created without slots", created.ID)
	}

	return &models.CreateFieldResponse{
		Field:      *models.FromDomainField(created),
		Generation: generation,
	}, nil
}

// recordGeneration учитывает сгенерированные при создании поля слоты в метриках
// и публикует slots.generated. Ошибка публикации не отменяет создание.
func (s *Service) recordGeneration(ctx context.Context, fieldID int64, from time.Time, windowDays int, g *models.GenerationSummary) {
	s.metrics.RecordGeneration(g.Generated, g.Skipped)
	if g.Generated == 0 {
		return
	}

	event := broker.NewSlotsGenerated(fieldID, from, windowDays, g.Generated, g.Skipped, s.timeProvider.Now())
	if err := s.publisher.PublishJSON(ctx, broker.RoutingSlotsGenerated, event); err != nil {
		s.logger.Warn("Create: failed to publish %s for field id=%d: %v", broker.RoutingSlotsGenerated, fieldID, err)
	}
}

// Update частично обновляет поле. Доступно только владельцу поля.
func (s *Service) Update(ctx context.Context, principal domain.Principal, id int64, req *models.UpdateFieldRequest) (*models.FieldResponse, error) {
	s.logger.Info("Update: field id=%d by account=%s", id, principal.AccountID)

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	var updated *domain.Field
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.getField(txCtx, "Update", id)
		if err != nil {
			return err
		}

		if !current.IsOwnedBy(principal) {
			s.logger.Warn("Update: access denied for account=%s to field id=%d", principal.AccountID, id)
			return ErrAccessDenied
		}

		merged := req.ApplyTo(*current)
		if err := merged.Validate(); err != nil {
			s.logger.Warn("Update: invalid field id=%d: %v", id, err)
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}

		updated, err = s.fieldRepo.Update(txCtx, merged)
		if err != nil {
			if errors.Is(err, fieldRepo.ErrCityNotFound) {
				return ErrCityNotFound
			}
			if errors.Is(err, domain.ErrNotFound) {
				return ErrFieldNotFound
			}
			s.logger.Error("Update: repository error for field id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, "Update")

	s.logger.Info("Update: field id=%d updated", id)
	return models.FromDomainField(updated), nil
}

func (s *Service) getField(ctx context.Context, op string, id int64) (*domain.Field, error) {
	field, err := s.fieldRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("%s: field id=%d not found", op, id)
			return nil, ErrFieldNotFound
		}
		s.logger.Error("%s: repository error for field id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return field, nil
}

// invalidateCache сбрасывает кэш просмотра; ошибка не влияет на результат операции
func (s *Service) invalidateCache(ctx context.Context, op string) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("%s: failed to invalidate browse cache: %v", op, err)
	}
}
