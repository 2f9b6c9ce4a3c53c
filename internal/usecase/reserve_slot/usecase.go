package reserve_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/broker"
	reservationRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/reservation"
)

// UseCase use case для бронирования слота
type UseCase struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	txManager       TransactionManager
	publisher       EventPublisher
	cache           CacheInvalidator
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	cache CacheInvalidator,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		txManager:       txManager,
		publisher:       publisher,
		cache:           cache,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute бронирует слот для клиента.
// Слот переводится в забронированный условным UPDATE ... WHERE is_reserved = false,
// поэтому из конкурентных попыток побеждает ровно одна. Операция не повторяется
// автоматически; повтор со стороны клиента безопасен с тем же ключом идемпотентности.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	if err != nil {
		uc.metrics.RecordReservation(outcomeOf(err))
		return nil, err
	}
	if resp.Replayed {
		uc.metrics.RecordReservation(outcomeReplayed)
	} else {
		uc.metrics.RecordReservation(outcomeCreated)
	}
	return resp, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: account=%s, availability=%d, idempotent=%t",
		req.Principal.AccountID, req.AvailabilityID, req.IdempotencyKey != nil)

	// 1. Бронировать может только клиент
	if !req.Principal.IsCustomer() {
		uc.logger.Warn("ReserveSlot: account=%q with role=%q is not a customer", req.Principal.AccountID, req.Principal.Role)
		return nil, ErrNotCustomer
	}

	// 2. Валидация входных данных
	key, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		return nil, err
	}

	customerID := req.Principal.AccountID

	var (
		result   *domain.Reservation
		replayed bool
	)

	// 3. Захват слота и создание бронирования в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Повтор запроса с тем же ключом возвращает уже созданное бронирование
		if key != nil {
			existing, err := uc.findByKey(txCtx, customerID, *key)
			if err != nil {
				return err
			}
			if existing != nil {
				result, replayed = existing, true
				return nil
			}
		}

		// 3.2. Условный UPDATE; строка блокируется до конца транзакции
		reserved, err := uc.slotRepo.MarkReserved(txCtx, req.AvailabilityID)
		if err != nil {
			uc.logger.Error("ReserveSlot: failed to mark slot id=%d reserved: %v", req.AvailabilityID, err)
			return fmt.Errorf("%w: failed to mark slot reserved: %w", ErrInternal, err)
		}

		if !reserved {
			existing, err := uc.explainMiss(txCtx, req.AvailabilityID, customerID, key)
			if err != nil {
				return err
			}
			result, replayed = existing, true
			return nil
		}

		// 3.3. Создаем бронирование; депозит по умолчанию не оплачен
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			CustomerID:     customerID,
			AvailabilityID: req.AvailabilityID,
			DepositPaid:    false,
			IdempotencyKey: key,
		})
		if err != nil {
			switch {
			case errors.Is(err, reservationRepo.ErrSlotAlreadyReserved):
				uc.logger.Warn("ReserveSlot: slot id=%d already has a reservation", req.AvailabilityID)
				return ErrSlotAlreadyReserved
			case errors.Is(err, reservationRepo.ErrSlotNotFound):
				return ErrSlotNotFound
			case errors.Is(err, reservationRepo.ErrDuplicateIdempotencyKey):
				// Транзакция уже прервана, повторный поиск выполняется после отката
				return err
			default:
				uc.logger.Error("ReserveSlot: failed to create reservation: %v", err)
				return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	// 4. Параллельный запрос с тем же ключом успел зафиксироваться первым
	if errors.Is(err, reservationRepo.ErrDuplicateIdempotencyKey) {
		existing, lookupErr := uc.findByKey(ctx, customerID, *key)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if existing == nil {
			uc.logger.Error("ReserveSlot: duplicate idempotency key %s but no reservation found", *key)
			return nil, fmt.Errorf("%w: idempotency key conflict without reservation", ErrInternal)
		}
		result, replayed, err = existing, true, nil
	}

	if err != nil {
		return nil, err
	}

	if replayed {
		uc.logger.Info("ReserveSlot: replayed reservation id=%d for key=%s", result.ID, *key)
		return toResponse(result, true), nil
	}

	uc.logger.Info("ReserveSlot: reservation id=%d created for slot id=%d by customer=%s",
		result.ID, result.AvailabilityID, customerID)

	// 5. Побочные эффекты после фиксации; их ошибки не отменяют бронирование
	uc.afterCommit(ctx, result)

	return toResponse(result, false), nil
}

// explainMiss определяет, почему условный UPDATE не затронул строку.
// Возвращает бронирование, если слот занял параллельный запрос этого же клиента
// с тем же ключом идемпотентности.
func (uc *UseCase) explainMiss(ctx context.Context, availabilityID int64, customerID string, key *string) (*domain.Reservation, error) {
	exists, err := uc.slotRepo.Exists(ctx, availabilityID)
	if err != nil {
		uc.logger.Error("ReserveSlot: failed to check slot id=%d: %v", availabilityID, err)
		return nil, fmt.Errorf("%w: failed to check slot: %w", ErrInternal, err)
	}
	if !exists {
		uc.logger.Warn("ReserveSlot: slot id=%d not found", availabilityID)
		return nil, ErrSlotNotFound
	}

	if key != nil {
		existing, err := uc.findByKey(ctx, customerID, *key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	uc.logger.Warn("ReserveSlot: slot id=%d already reserved", availabilityID)
	return nil, ErrSlotAlreadyReserved
}

// findByKey возвращает nil, nil, если бронирования с ключом нет
func (uc *UseCase) findByKey(ctx context.Context, customerID, key string) (*domain.Reservation, error) {
	existing, err := uc.reservationRepo.GetByIdempotencyKey(ctx, customerID, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		uc.logger.Error("ReserveSlot: failed to look up idempotency key: %v", err)
		return nil, fmt.Errorf("%w: failed to look up idempotency key: %w", ErrInternal, err)
	}
	return existing, nil
}

func (uc *UseCase) afterCommit(ctx context.Context, r *domain.Reservation) {
	event := broker.NewReservationCreated(r, uc.timeProvider.Now())
	if err := uc.publisher.PublishJSON(ctx, broker.RoutingReservationCreated, event); err != nil {
		uc.logger.Warn("ReserveSlot: failed to publish %s for reservation id=%d: %v",
			broker.RoutingReservationCreated, r.ID, err)
	}

	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("ReserveSlot: failed to invalidate browse cache: %v", err)
	}
}

func toResponse(r *domain.Reservation, replayed bool) *Response {
	return &Response{
		ReservationID:   r.ID,
		AvailabilityID:  r.AvailabilityID,
		CustomerID:      r.CustomerID,
		DepositPaid:     r.DepositPaid,
		ReservationTime: r.ReservationTime,
		Replayed:        replayed,
	}
}
