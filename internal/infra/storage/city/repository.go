package city

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/psqlbuilder"
)

// Repository справочник городов (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория городов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все города по алфавиту
func (r *Repository) List(ctx context.Context) ([]*domain.City, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("cities").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(ErrExecQuery, "List - execute query", err)
	}
	defer rows.Close()

	cities := make([]*domain.City, 0)
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		cities = append(cities, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError(ErrScanRow, "List - rows error", err)
	}

	return cities, nil
}

// GetByID получает город по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.City, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("cities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.City
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCityNotFound
	}
	if err != nil {
		return nil, wrapDBError(ErrScanRow, "GetByID - scan city", err)
	}

	return &c, nil
}
