package set_day_pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

// UseCase use case для массового изменения цен слотов на дату
type UseCase struct {
	fieldRepo FieldRepository
	slotRepo  SlotRepository
	txManager TransactionManager
	retrier   Retrier
	cache     CacheInvalidator
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	fieldRepo FieldRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	retrier Retrier,
	cache CacheInvalidator,
	logger Logger,
) *UseCase {
	return &UseCase{
		fieldRepo: fieldRepo,
		slotRepo:  slotRepo,
		txManager: txManager,
		retrier:   retrier,
		cache:     cache,
		logger:    logger,
	}
}

// Execute устанавливает цену и депозит слотам поля на дату.
// Слоты дня блокируются (FOR UPDATE), поэтому параллельное бронирование
// не проскочит между выбором свободных слотов и обновлением.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	date := domain.NormalizeDate(req.Date)
	onlyUnreserved := ptr.Deref(req.ApplyOnlyToUnreserved, true)

	uc.logger.Info("SetDayPricing: account=%s, field=%d, date=%s, price=%.2f, deposit=%.2f, onlyUnreserved=%t",
		req.Principal.AccountID, req.FieldID, date.Format(domain.DateFormat), req.Price, req.DepositAmount, onlyUnreserved)

	// 1. Роль и валидация цены
	if !req.Principal.IsOwner() {
		uc.logger.Warn("SetDayPricing: account=%q is not an owner", req.Principal.AccountID)
		return nil, ErrNotOwner
	}

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SetDayPricing: validation failed: %v", err)
		return nil, err
	}

	var resp *Response

	// 2. Блокировка слотов дня и обновление; повторяется при недоступности хранилища
	err := uc.retrier.Do(ctx, func(ctx context.Context) error {
		return uc.txManager.Do(ctx, func(txCtx context.Context) error {
			field, err := uc.fieldRepo.GetByID(txCtx, req.FieldID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					uc.logger.Warn("SetDayPricing: field id=%d not found", req.FieldID)
					return ErrFieldNotFound
				}
				return fmt.Errorf("%w: failed to get field: %w", ErrInternal, err)
			}

			if !field.IsOwnedBy(req.Principal) {
				uc.logger.Warn("SetDayPricing: account=%s does not own field id=%d", req.Principal.AccountID, req.FieldID)
				return ErrNotOwner
			}

			slots, err := uc.slotRepo.ListByFieldAndDate(txCtx, req.FieldID, date)
			if err != nil {
				return fmt.Errorf("%w: failed to list slots: %w", ErrInternal, err)
			}

			attempt := &Response{
				FieldID:    req.FieldID,
				Date:       date,
				UpdatedIDs: make([]int64, 0, len(slots)),
				SkippedIDs: make([]int64, 0),
			}
			for _, s := range slots {
				if onlyUnreserved && s.IsReserved {
					attempt.SkippedIDs = append(attempt.SkippedIDs, s.ID)
					continue
				}
				attempt.UpdatedIDs = append(attempt.UpdatedIDs, s.ID)
			}

			if _, err := uc.slotRepo.UpdatePricing(txCtx, attempt.UpdatedIDs, req.Price, req.DepositAmount); err != nil {
				uc.logger.Error("SetDayPricing: failed to update pricing for field=%d: %v", req.FieldID, err)
				return fmt.Errorf("%w: failed to update pricing: %w", ErrInternal, err)
			}

			resp = attempt
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if len(resp.UpdatedIDs) > 0 {
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.logger.Warn("SetDayPricing: failed to invalidate browse cache: %v", err)
		}
	}

	uc.logger.Info("SetDayPricing: field=%d date=%s updated=%d skipped=%d",
		req.FieldID, date.Format(domain.DateFormat), len(resp.UpdatedIDs), len(resp.SkippedIDs))
	return resp, nil
}
