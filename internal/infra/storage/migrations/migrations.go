// Package migrations applies the embedded SQL schema on startup.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.sql
var files embed.FS

var (
	// ErrReadMigrations возвращается, когда встроенные файлы не читаются
	ErrReadMigrations = errors.New("migrations: failed to read embedded files")

	// ErrApplyMigration возвращается при ошибке применения миграции
	ErrApplyMigration = errors.New("migrations: failed to apply migration")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Apply применяет еще не примененные миграции по порядку имени файла.
// Каждая миграция выполняется в своей транзакции вместе с записью в schema_migrations.
func Apply(ctx context.Context, db *sql.DB, logger Logger) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		return fmt.Errorf("%w: create schema_migrations: %v", ErrApplyMigration, err)
	}

	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMigrations, err)
	}
	sort.Strings(names)

	for _, name := range names {
		version := strings.TrimSuffix(name, ".sql")

		applied, err := isApplied(ctx, db, version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		body, err := files.ReadFile(name)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrReadMigrations, name, err)
		}

		if err := applyOne(ctx, db, version, string(body)); err != nil {
			return err
		}
		logger.Info("Migration %s applied", version)
	}

	return nil
}

func isApplied(ctx context.Context, db *sql.DB, version string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: check %s: %v", ErrApplyMigration, version, err)
	}
	return exists, nil
}

func applyOne(ctx context.Context, db *sql.DB, version, body string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: begin: %v", ErrApplyMigration, version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, body); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrApplyMigration, version, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version) VALUES ($1)`, version,
	); err != nil {
		return fmt.Errorf("%w: %s: record version: %v", ErrApplyMigration, version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %s: commit: %v", ErrApplyMigration, version, err)
	}
	return nil
}
