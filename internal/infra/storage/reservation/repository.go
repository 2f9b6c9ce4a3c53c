package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/pgerrors"
	"github.com/m04kA/SMC-FieldBookingService/pkg/psqlbuilder"
)

const tableName = "reservations"

var reservationColumns = []string{
	"id",
	"customer_id",
	"availability_id",
	"deposit_paid",
	"reservation_time",
	"idempotency_key",
}

// detailColumns бронирование + слот + поле
var detailColumns = []string{
	"r.id",
	"r.customer_id",
	"r.availability_id",
	"r.deposit_paid",
	"r.reservation_time",
	"r.idempotency_key",
	"f.id",
	"f.name",
	"f.location",
	"f.owner_id",
	"a.date",
	"a.start_time",
	"a.end_time",
	"a.price",
	"a.deposit_amount",
}

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование. Уникальность availability_id - вторая линия защиты от двойного бронирования
// после условного UPDATE слота.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"customer_id",
			"availability_id",
			"deposit_paid",
			"idempotency_key",
		).
		Values(
			reservation.CustomerID,
			reservation.AvailabilityID,
			reservation.DepositPaid,
			reservation.IdempotencyKey,
		).
		Suffix("RETURNING id, reservation_time").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&reservation.ReservationTime,
	)

	switch {
	case err == nil:
		return reservation, nil
	case pgerrors.IsUniqueViolation(err, constraintAvailability):
		return nil, fmt.Errorf("%w: availability_id=%d", ErrSlotAlreadyReserved, reservation.AvailabilityID)
	case pgerrors.IsUniqueViolation(err, constraintIdempotencyKey):
		return nil, ErrDuplicateIdempotencyKey
	case pgerrors.IsForeignKeyViolation(err):
		return nil, fmt.Errorf("%w: availability_id=%d", ErrSlotNotFound, reservation.AvailabilityID)
	default:
		return nil, wrapDBError(ErrExecQuery, "Create - execute insert", err)
	}
}

// GetByIdempotencyKey ищет бронирование клиента по ключу идемпотентности
func (r *Repository) GetByIdempotencyKey(ctx context.Context, customerID, key string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From(tableName).
		Where(squirrel.Eq{"customer_id": customerID, "idempotency_key": key}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIdempotencyKey - build select query: %v", ErrBuildQuery, err)
	}

	var res domain.Reservation
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&res.CustomerID,
		&res.AvailabilityID,
		&res.DepositPaid,
		&res.ReservationTime,
		&res.IdempotencyKey,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, wrapDBError(ErrScanRow, "GetByIdempotencyKey - scan reservation", err)
	}

	return &res, nil
}

// ExistsForAvailability проверяет, есть ли бронирование на слот
func (r *Repository) ExistsForAvailability(ctx context.Context, availabilityID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(tableName).
		Where(squirrel.Eq{"availability_id": availabilityID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsForAvailability - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, wrapDBError(ErrScanRow, "ExistsForAvailability - scan", err)
	}

	return exists, nil
}

// GetByID получает бронирование вместе со слотом и полем
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ReservationDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailSelect().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	detail, err := scanDetail(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, wrapDBError(ErrScanRow, "GetByID - scan reservation", err)
	}

	return detail, nil
}

// ListByCustomer возвращает историю бронирований клиента, новые первыми
func (r *Repository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.ReservationDetail, error) {
	query, args, err := detailSelect().
		Where(squirrel.Eq{"r.customer_id": customerID}).
		OrderBy("r.reservation_time DESC", "r.id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	return r.listDetails(ctx, "ListByCustomer", query, args)
}

// ListByOwner возвращает бронирования на все поля владельца, новые первыми
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.ReservationDetail, error) {
	query, args, err := detailSelect().
		Where(squirrel.Eq{"f.owner_id": ownerID}).
		OrderBy("r.reservation_time DESC", "r.id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %v", ErrBuildQuery, err)
	}

	return r.listDetails(ctx, "ListByOwner", query, args)
}

func (r *Repository) listDetails(ctx context.Context, op, query string, args []interface{}) ([]*domain.ReservationDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(ErrExecQuery, op+" - execute query", err)
	}
	defer rows.Close()

	details := make([]*domain.ReservationDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError(ErrScanRow, op+" - rows error", err)
	}

	return details, nil
}

func detailSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(detailColumns...).
		From("reservations r").
		Join("availabilities a ON a.id = r.availability_id").
		Join("fields f ON f.id = a.field_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDetail(row rowScanner) (*domain.ReservationDetail, error) {
	var d domain.ReservationDetail

	err := row.Scan(
		&d.ID,
		&d.CustomerID,
		&d.AvailabilityID,
		&d.DepositPaid,
		&d.ReservationTime,
		&d.IdempotencyKey,
		&d.FieldID,
		&d.FieldName,
		&d.FieldLocation,
		&d.OwnerID,
		&d.Date,
		&d.StartTime,
		&d.EndTime,
		&d.Price,
		&d.DepositAmount,
	)
	if err != nil {
		return nil, err
	}

	return &d, nil
}
