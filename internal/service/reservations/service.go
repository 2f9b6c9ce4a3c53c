package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/reservations/models"
)

// Service чтение бронирований
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Видно клиенту, который его сделал, и владельцу поля.
func (s *Service) GetByID(ctx context.Context, principal domain.Principal, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for account=%s", id, principal.AccountID)

	detail, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	// Проверяем права доступа
	if !detail.IsVisibleTo(principal) {
		s.logger.Warn("GetByID: access denied for account=%s to reservation id=%d", principal.AccountID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainDetail(detail), nil
}

// ListForPrincipal возвращает историю бронирований, новые первыми.
// Клиент видит свои бронирования, владелец - бронирования на своих полях.
func (s *Service) ListForPrincipal(ctx context.Context, principal domain.Principal) (*models.ReservationListResponse, error) {
	var (
		details []*domain.ReservationDetail
		err     error
	)

	switch {
	case principal.IsCustomer():
		details, err = s.reservationRepo.ListByCustomer(ctx, principal.AccountID)
	case principal.IsOwner():
		details, err = s.reservationRepo.ListByOwner(ctx, principal.AccountID)
	default:
		s.logger.Warn("ListForPrincipal: account=%q has no usable role", principal.AccountID)
		return nil, ErrAccessDenied
	}
	if err != nil {
		s.logger.Error("ListForPrincipal: repository error for account=%s: %v", principal.AccountID, err)
		return nil, fmt.Errorf("%w: ListForPrincipal - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListForPrincipal: found %d reservations for %s=%s",
		len(details), principal.Role, principal.AccountID)
	return models.FromDomainDetailList(details), nil
}
