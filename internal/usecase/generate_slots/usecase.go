package generate_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/broker"
)

// UseCase use case для генерации слотов по недельному шаблону
type UseCase struct {
	fieldRepo         FieldRepository
	slotRepo          SlotRepository
	txManager         TransactionManager
	retrier           Retrier
	publisher         EventPublisher
	cache             CacheInvalidator
	metrics           Metrics
	timeProvider      TimeProvider
	logger            Logger
	defaultWindowDays int
	maxWindowDays     int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	fieldRepo FieldRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	retrier Retrier,
	publisher EventPublisher,
	cache CacheInvalidator,
	metrics Metrics,
	logger Logger,
	defaultWindowDays int,
	maxWindowDays int,
) *UseCase {
	maxWindowDays = domain.EffectiveMaxWindow(maxWindowDays)
	if defaultWindowDays <= 0 {
		defaultWindowDays = domain.DefaultGenerationWindowDays
	}
	if defaultWindowDays > maxWindowDays {
		defaultWindowDays = maxWindowDays
	}
	return &UseCase{
		fieldRepo:         fieldRepo,
		slotRepo:          slotRepo,
		txManager:         txManager,
		retrier:           retrier,
		publisher:         publisher,
		cache:             cache,
		metrics:           metrics,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
		defaultWindowDays: defaultWindowDays,
		maxWindowDays:     maxWindowDays,
	}
}

// Execute разворачивает шаблон на окно дней и вставляет отсутствующие слоты.
// Существующие слоты (field, date, start_time) не перезаписываются, поэтому
// повторный запуск безопасен и при временных сбоях операция повторяется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	windowDays := req.WindowDays
	if windowDays == 0 {
		windowDays = uc.defaultWindowDays
	}

	uc.logger.Info("GenerateSlots: account=%s, field=%d, entries=%d, window=%d",
		req.Principal.AccountID, req.FieldID, len(req.Template), windowDays)

	// 1. Роль проверяется до чтения поля
	if !req.Principal.IsOwner() {
		uc.logger.Warn("GenerateSlots: account=%q is not an owner", req.Principal.AccountID)
		return nil, ErrNotOwner
	}

	// 2. Валидация шаблона целиком
	if err := validateRequest(req, windowDays, uc.maxWindowDays); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	from, err := resolveStart(req.StartDate, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("GenerateSlots: %v", err)
		return nil, err
	}

	slots := req.Template.Expand(req.FieldID, from, windowDays)

	// 3. Проверка владельца и вставка; повторяется при недоступности хранилища
	var inserted []int64
	err = uc.retrier.Do(ctx, func(ctx context.Context) error {
		return uc.txManager.Do(ctx, func(txCtx context.Context) error {
			field, err := uc.fieldRepo.GetByID(txCtx, req.FieldID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					uc.logger.Warn("GenerateSlots: field id=%d not found", req.FieldID)
					return ErrFieldNotFound
				}
				uc.logger.Error("GenerateSlots: failed to get field id=%d: %v", req.FieldID, err)
				return fmt.Errorf("%w: failed to get field: %w", ErrInternal, err)
			}

			if !field.IsOwnedBy(req.Principal) {
				uc.logger.Warn("GenerateSlots: account=%s does not own field id=%d", req.Principal.AccountID, req.FieldID)
				return ErrNotOwner
			}

			inserted, err = uc.slotRepo.InsertIfAbsent(txCtx, slots)
			if err != nil {
				uc.logger.Error("GenerateSlots: failed to insert slots for field id=%d: %v", req.FieldID, err)
				return fmt.Errorf("%w: failed to insert slots: %w", ErrInternal, err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	resp := &Response{
		FieldID:   req.FieldID,
		Generated: len(inserted),
		Skipped:   len(slots) - len(inserted),
		From:      from,
		To:        from.AddDate(0, 0, windowDays-1),
	}

	uc.metrics.RecordGeneration(resp.Generated, resp.Skipped)
	if resp.Skipped > 0 {
		uc.logger.Info("GenerateSlots: field=%d skipped %d existing slots", req.FieldID, resp.Skipped)
	}
	uc.logger.Info("GenerateSlots: field=%d generated %d slots for %s..%s",
		req.FieldID, resp.Generated, resp.From.Format(domain.DateFormat), resp.To.Format(domain.DateFormat))

	// 4. Побочные эффекты только если что-то изменилось
	if resp.Generated > 0 {
		event := broker.NewSlotsGenerated(req.FieldID, from, windowDays, resp.Generated, resp.Skipped, uc.timeProvider.Now())
		if err := uc.publisher.PublishJSON(ctx, broker.RoutingSlotsGenerated, event); err != nil {
			uc.logger.Warn("GenerateSlots: failed to publish %s: %v", broker.RoutingSlotsGenerated, err)
		}
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.logger.Warn("GenerateSlots: failed to invalidate browse cache: %v", err)
		}
	}

	return resp, nil
}
