package field

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/psqlbuilder"
)

const tableName = "fields"

var fieldColumns = []string{
	"id",
	"owner_id",
	"city_id",
	"name",
	"location",
	"description",
	"image_url",
	"created_at",
	"updated_at",
}

// Repository репозиторий полей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория полей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает поле
func (r *Repository) Create(ctx context.Context, field *domain.Field) (*domain.Field, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"owner_id",
			"city_id",
			"name",
			"location",
			"description",
			"image_url",
		).
		Values(
			field.OwnerID,
			field.CityID,
			field.Name,
			field.Location,
			field.Description,
			field.ImageURL,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&field.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, wrapDBError(ErrExecQuery, "Create - execute insert", err)
	}

	field.CreatedAt = createdAt.Time
	field.UpdatedAt = updatedAt.Time

	return field, nil
}

// Update обновляет описательные атрибуты поля. Владелец не меняется.
func (r *Repository) Update(ctx context.Context, field *domain.Field) (*domain.Field, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("city_id", field.CityID).
		Set("name", field.Name).
		Set("location", field.Location).
		Set("description", field.Description).
		Set("image_url", field.ImageURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": field.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFieldNotFound
	}
	if err != nil {
		return nil, wrapDBError(ErrExecQuery, "Update - execute update", err)
	}

	field.CreatedAt = createdAt.Time
	field.UpdatedAt = updatedAt.Time

	return field, nil
}

// GetByID получает поле по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Field, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(fieldColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	field, err := scanField(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFieldNotFound
	}
	if err != nil {
		return nil, wrapDBError(ErrScanRow, "GetByID - scan field", err)
	}

	return field, nil
}

// ListByOwner возвращает поля владельца, новые первыми
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Field, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(fieldColumns...).
		From(tableName).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(ErrExecQuery, "ListByOwner - execute query", err)
	}
	defer rows.Close()

	fields := make([]*domain.Field, 0)
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByOwner - scan row: %v", ErrScanRow, err)
		}
		fields = append(fields, f)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError(ErrScanRow, "ListByOwner - rows error", err)
	}

	return fields, nil
}

// Search ищет поля по городу, тексту и диапазону цен.
// Диапазон цен поля - min/max цен его слотов; поле подходит, если его диапазон
// пересекается с запрошенным. Поля без слотов исключаются, если задана граница цены.
func (r *Repository) Search(ctx context.Context, filter domain.FieldFilter) ([]*domain.FieldSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"f.id",
		"f.owner_id",
		"f.city_id",
		"f.name",
		"f.location",
		"f.description",
		"f.image_url",
		"f.created_at",
		"f.updated_at",
		"c.name",
		"p.min_price",
		"p.max_price",
	).
		From("fields f").
		Join("cities c ON c.id = f.city_id").
		LeftJoin("(SELECT field_id, MIN(price) AS min_price, MAX(price) AS max_price FROM availabilities GROUP BY field_id) p ON p.field_id = f.id")

	if filter.CityID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"f.city_id": *filter.CityID})
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"f.name": pattern},
			squirrel.ILike{"f.location": pattern},
		})
	}
	if filter.MinPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"p.max_price": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"p.min_price": *filter.MaxPrice})
	}

	selectBuilder = selectBuilder.OrderBy(searchOrder(filter.Sort))

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Search - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(ErrExecQuery, "Search - execute query", err)
	}
	defer rows.Close()

	summaries := make([]*domain.FieldSummary, 0)
	for rows.Next() {
		var s domain.FieldSummary
		var createdAt, updatedAt sql.NullTime
		var minPrice, maxPrice sql.NullFloat64

		if err := rows.Scan(
			&s.ID,
			&s.OwnerID,
			&s.CityID,
			&s.Name,
			&s.Location,
			&s.Description,
			&s.ImageURL,
			&createdAt,
			&updatedAt,
			&s.CityName,
			&minPrice,
			&maxPrice,
		); err != nil {
			return nil, fmt.Errorf("%w: Search - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time
		if minPrice.Valid {
			s.MinPrice = &minPrice.Float64
		}
		if maxPrice.Valid {
			s.MaxPrice = &maxPrice.Float64
		}
		summaries = append(summaries, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError(ErrScanRow, "Search - rows error", err)
	}

	return summaries, nil
}

func searchOrder(sort domain.FieldSort) string {
	switch sort {
	case domain.FieldSortPriceAsc:
		return "p.min_price ASC NULLS LAST, f.name ASC, f.id ASC"
	case domain.FieldSortPriceDesc:
		return "p.min_price DESC NULLS LAST, f.name ASC, f.id ASC"
	case domain.FieldSortNameDesc:
		return "f.name DESC, f.id ASC"
	default:
		return "f.name ASC, f.id ASC"
	}
}

// escapeLike экранирует спецсимволы LIKE в пользовательском вводе
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanField(row rowScanner) (*domain.Field, error) {
	var f domain.Field
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&f.ID,
		&f.OwnerID,
		&f.CityID,
		&f.Name,
		&f.Location,
		&f.Description,
		&f.ImageURL,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	f.CreatedAt = createdAt.Time
	f.UpdatedAt = updatedAt.Time

	return &f, nil
}
