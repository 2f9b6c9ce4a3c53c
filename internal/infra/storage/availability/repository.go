package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

const tableName = "availabilities"

// insertBatchSize ограничивает число строк в одном INSERT (9 параметров на строку)
const insertBatchSize = 500

var slotColumns = []string{
	"id",
	"field_id",
	"date",
	"start_time",
	"end_time",
	"price",
	"deposit_amount",
	"is_reserved",
	"created_at",
	"updated_at",
}

// Repository репозиторий слотов доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает слот по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, wrapDBError(ErrScanRow, "GetByID - scan slot", err)
	}

	return slot, nil
}

// GetByFieldDateStart получает слот по естественному ключу (field, date, start_time).
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByFieldDateStart(ctx context.Context, fieldID int64, date time.Time, start types.TimeString) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{
			"field_id":   fieldID,
			"date":       date,
			"start_time": start,
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFieldDateStart - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, wrapDBError(ErrScanRow, "GetByFieldDateStart - scan slot", err)
	}

	return slot, nil
}

// ListByFieldAndDate возвращает слоты поля на дату, упорядоченные по start_time.
// Внутри транзакции все строки дня блокируются (FOR UPDATE) - используется при массовом изменении цен.
func (r *Repository) ListByFieldAndDate(ctx context.Context, fieldID int64, date time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{"field_id": fieldID, "date": date}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFieldAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(ErrExecQuery, "ListByFieldAndDate - execute query", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListForCity возвращает слоты всех полей города с метаданными поля и города
func (r *Repository) ListForCity(ctx context.Context, filter domain.CitySlotsFilter) ([]*domain.SlotListing, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"a.id",
		"a.field_id",
		"a.date",
		"a.start_time",
		"a.end_time",
		"a.price",
		"a.deposit_amount",
		"a.is_reserved",
		"a.created_at",
		"a.updated_at",
		"f.name",
		"f.location",
		"c.id",
		"c.name",
	).
		From("availabilities a").
		Join("fields f ON f.id = a.field_id").
		Join("cities c ON c.id = f.city_id").
		Where(squirrel.Eq{"f.city_id": filter.CityID})

	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"a.date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"a.date": *filter.DateTo})
	}
	if filter.MinPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"a.price": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"a.price": *filter.MaxPrice})
	}
	if filter.OnlyFree {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.is_reserved": false})
	}

	selectBuilder = selectBuilder.OrderBy(citySlotsOrder(filter.Sort))

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForCity - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(ErrExecQuery, "ListForCity - execute query", err)
	}
	defer rows.Close()

	listings := make([]*domain.SlotListing, 0)
	for rows.Next() {
		var l domain.SlotListing
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&l.ID,
			&l.FieldID,
			&l.Date,
			&l.StartTime,
			&l.EndTime,
			&l.Price,
			&l.DepositAmount,
			&l.IsReserved,
			&createdAt,
			&updatedAt,
			&l.FieldName,
			&l.FieldLocation,
			&l.CityID,
			&l.CityName,
		); err != nil {
			return nil, fmt.Errorf("%w: ListForCity - scan row: %v", ErrScanRow, err)
		}

		l.CreatedAt = createdAt.Time
		l.UpdatedAt = updatedAt.Time
		listings = append(listings, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError(ErrScanRow, "ListForCity - rows error", err)
	}

	return listings, nil
}

// InsertIfAbsent вставляет слоты, пропуская уже существующие (field_id, date, start_time).
// Существующие слоты не перезаписываются. Возвращает ID вставленных слотов.
func (r *Repository) InsertIfAbsent(ctx context.Context, slots []*domain.Slot) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inserted := make([]int64, 0, len(slots))
	for start := 0; start < len(slots); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(slots) {
			end = len(slots)
		}

		insertBuilder := psqlbuilder.Insert(tableName).
			Columns(
				"field_id",
				"date",
				"start_time",
				"end_time",
				"price",
				"deposit_amount",
				"is_reserved",
			)
		for _, s := range slots[start:end] {
			insertBuilder = insertBuilder.Values(
				s.FieldID,
				s.Date,
				s.StartTime,
				s.EndTime,
				s.Price,
				s.DepositAmount,
				s.IsReserved,
			)
		}

		query, args, err := insertBuilder.
			Suffix("ON CONFLICT (field_id, date, start_time) DO NOTHING RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: InsertIfAbsent - build insert query: %v", ErrBuildQuery, err)
		}

		rows, err := executor.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, wrapWriteError("InsertIfAbsent - execute insert", err)
		}

		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return nil, fmt.Errorf("%w: InsertIfAbsent - scan id: %v", ErrScanRow, err)
			}
			inserted = append(inserted, id)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, wrapWriteError("InsertIfAbsent - rows error", err)
		}
	}

	return inserted, nil
}

// Create создает один слот
func (r *Repository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"field_id",
			"date",
			"start_time",
			"end_time",
			"price",
			"deposit_amount",
			"is_reserved",
		).
		Values(
			slot.FieldID,
			slot.Date,
			slot.StartTime,
			slot.EndTime,
			slot.Price,
			slot.DepositAmount,
			slot.IsReserved,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, wrapWriteError("Create - execute insert", err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// Update обновляет изменяемые атрибуты слота (end_time, price, deposit_amount, is_reserved)
func (r *Repository) Update(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("end_time", slot.EndTime).
		Set("price", slot.Price).
		Set("deposit_amount", slot.DepositAmount).
		Set("is_reserved", slot.IsReserved).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, wrapWriteError("Update - execute update", err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// MarkReserved атомарно переводит свободный слот в забронированный.
// Возвращает false, если слот не существует или уже забронирован;
// конкурирующие транзакции сериализуются на блокировке строки.
func (r *Repository) MarkReserved(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("is_reserved", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_reserved": false}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: MarkReserved - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, wrapDBError(ErrExecQuery, "MarkReserved - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkReserved - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// Exists проверяет существование слота
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, wrapDBError(ErrScanRow, "Exists - scan", err)
	}

	return exists, nil
}

// UpdatePricing устанавливает цену и депозит для перечисленных слотов
func (r *Repository) UpdatePricing(ctx context.Context, ids []int64, price, deposit float64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("price", price).
		Set("deposit_amount", deposit).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: UpdatePricing - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapWriteError("UpdatePricing - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: UpdatePricing - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func citySlotsOrder(sort domain.SlotSort) string {
	switch sort {
	case domain.SlotSortPriceAsc:
		return "a.price ASC, a.date ASC, a.start_time ASC"
	case domain.SlotSortPriceDesc:
		return "a.price DESC, a.date ASC, a.start_time ASC"
	case domain.SlotSortNameAsc:
		return "f.name ASC, a.date ASC, a.start_time ASC"
	case domain.SlotSortNameDesc:
		return "f.name DESC, a.date ASC, a.start_time ASC"
	default:
		return "a.date ASC, a.start_time ASC, f.name ASC"
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var s domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.FieldID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.Price,
		&s.DepositAmount,
		&s.IsReserved,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError(ErrScanRow, "scanSlots - rows error", err)
	}

	return slots, nil
}
