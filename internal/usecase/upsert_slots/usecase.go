package upsert_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// UseCase use case для создания/изменения слотов поля
type UseCase struct {
	fieldRepo       FieldRepository
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	retrier         Retrier
	cache           CacheInvalidator
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	fieldRepo FieldRepository,
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	retrier Retrier,
	cache CacheInvalidator,
	logger Logger,
) *UseCase {
	return &UseCase{
		fieldRepo:       fieldRepo,
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		retrier:         retrier,
		cache:           cache,
		logger:          logger,
	}
}

// Execute применяет элементы по очереди, каждый в своей транзакции.
// Ошибка одного элемента не откатывает остальные и возвращается в его результате;
// ошибка всего запроса (права, поле, форма) возвращается как error.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpsertSlots: account=%s, field=%d, items=%d",
		req.Principal.AccountID, req.FieldID, len(req.Items))

	// 1. Роль и форма запроса
	if !req.Principal.IsOwner() {
		uc.logger.Warn("UpsertSlots: account=%q is not an owner", req.Principal.AccountID)
		return nil, ErrNotOwner
	}

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpsertSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Владелец поля не меняется, проверяем один раз
	field, err := uc.fieldRepo.GetByID(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("UpsertSlots: field id=%d not found", req.FieldID)
			return nil, ErrFieldNotFound
		}
		uc.logger.Error("UpsertSlots: failed to get field id=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %w", ErrInternal, err)
	}
	if !field.IsOwnedBy(req.Principal) {
		uc.logger.Warn("UpsertSlots: account=%s does not own field id=%d", req.Principal.AccountID, req.FieldID)
		return nil, ErrNotOwner
	}

	// 3. Элементы применяются независимо
	resp := &Response{
		FieldID: req.FieldID,
		Results: make([]ItemResult, 0, len(req.Items)),
	}

	for i, item := range req.Items {
		date := domain.NormalizeDate(item.Date)
		result := ItemResult{Index: i, Date: date, Start: item.StartTime}

		err := uc.retrier.Do(ctx, func(ctx context.Context) error {
			return uc.txManager.Do(ctx, func(txCtx context.Context) error {
				slot, created, err := uc.apply(txCtx, req.FieldID, date, item)
				if err != nil {
					return err
				}
				result.Slot, result.Created = slot, created
				return nil
			})
		})
		if err != nil {
			uc.logger.Warn("UpsertSlots: field=%d item %d (%s %s) failed: %v",
				req.FieldID, i, date.Format(domain.DateFormat), item.StartTime, err)
			result.Slot, result.Created, result.Err = nil, false, err
		}

		resp.Results = append(resp.Results, result)
	}

	succeeded := resp.Succeeded()
	if succeeded > 0 {
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.logger.Warn("UpsertSlots: failed to invalidate browse cache: %v", err)
		}
	}

	uc.logger.Info("UpsertSlots: field=%d applied %d/%d items", req.FieldID, succeeded, len(req.Items))
	return resp, nil
}

// apply создает слот, если его нет, иначе меняет переданные атрибуты
func (uc *UseCase) apply(ctx context.Context, fieldID int64, date time.Time, item Item) (*domain.Slot, bool, error) {
	existing, err := uc.slotRepo.GetByFieldDateStart(ctx, fieldID, date, item.StartTime)
	if err != nil && !errors.Is(err, domain.ErrSlotNotFound) {
		return nil, false, fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
	}

	if existing == nil {
		slot, err := uc.create(ctx, fieldID, date, item)
		return slot, true, err
	}

	slot, err := uc.update(ctx, existing, item.Patch)
	return slot, false, err
}

func (uc *UseCase) create(ctx context.Context, fieldID int64, date time.Time, item Item) (*domain.Slot, error) {
	if item.Patch.Price == nil {
		return nil, ErrPriceRequired
	}

	endTime, err := defaultEndTime(item)
	if err != nil {
		return nil, err
	}

	slot := &domain.Slot{
		FieldID:       fieldID,
		Date:          date,
		StartTime:     item.StartTime,
		EndTime:       endTime,
		Price:         *item.Patch.Price,
		DepositAmount: ptr.Deref(item.Patch.DepositAmount, 0),
		IsReserved:    ptr.Deref(item.Patch.IsReserved, false),
	}
	if err := slot.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	created, err := uc.slotRepo.Create(ctx, slot)
	if err != nil {
		return nil, wrapRepoError("create slot", err)
	}
	return created, nil
}

func (uc *UseCase) update(ctx context.Context, existing *domain.Slot, patch domain.SlotPatch) (*domain.Slot, error) {
	if patch.IsEmpty() {
		return existing, nil
	}

	// Снять отметку брони можно только со слота, заблокированного владельцем вручную
	if existing.IsReserved && patch.IsReserved != nil && !*patch.IsReserved {
		hasReservation, err := uc.reservationRepo.ExistsForAvailability(ctx, existing.ID)
		if err != nil {
			return nil, wrapRepoError("check reservation", err)
		}
		if hasReservation {
			return nil, fmt.Errorf("%w: slot id=%d", ErrSlotReserved, existing.ID)
		}
	}

	merged := patch.ApplyTo(*existing)
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	updated, err := uc.slotRepo.Update(ctx, &merged)
	if err != nil {
		return nil, wrapRepoError("update slot", err)
	}
	return updated, nil
}

// defaultEndTime возвращает конец слота: переданный или начало + длина слота по умолчанию
func defaultEndTime(item Item) (types.TimeString, error) {
	if item.Patch.EndTime != nil {
		return *item.Patch.EndTime, nil
	}
	end, err := item.StartTime.AddMinutes(domain.DefaultSlotLengthMinutes)
	if err != nil {
		return "", fmt.Errorf("%w: endTime is required for a slot starting at %s", ErrInvalidInput, item.StartTime)
	}
	return end, nil
}

// wrapRepoError сохраняет тип доменной ошибки репозитория
func wrapRepoError(op string, err error) error {
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}
