package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/syllabus/internal/db"
)

// FirstVisitKey marks that the onboarding guide has been offered.
const FirstVisitKey = "syllabus_visited"

// SQLiteFlagRepo implements FlagRepo on the app_flags table.
type SQLiteFlagRepo struct {
	db  db.DBTX
	uow db.UnitOfWork
}

// NewSQLiteFlagRepo creates a FlagRepo. uow may be nil, in which case
// CheckAndSet runs its read and write without a transaction.
func NewSQLiteFlagRepo(conn db.DBTX, uow db.UnitOfWork) *SQLiteFlagRepo {
	return &SQLiteFlagRepo{db: conn, uow: uow}
}

func (r *SQLiteFlagRepo) Get(ctx context.Context, key string) (bool, error) {
	return getFlag(ctx, r.db, key)
}

func (r *SQLiteFlagRepo) Set(ctx context.Context, key string, value bool) error {
	return setFlag(ctx, r.db, key, value)
}

func (r *SQLiteFlagRepo) CheckAndSet(ctx context.Context, key string) (bool, error) {
	run := func(ctx context.Context, tx db.DBTX) (bool, error) {
		_, err := getFlag(ctx, tx, key)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return false, err
		}
		return false, setFlag(ctx, tx, key, true)
	}

	if r.uow == nil {
		return run(ctx, r.db)
	}
	var present bool
	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		present, err = run(ctx, tx)
		return err
	})
	return present, err
}

func getFlag(ctx context.Context, conn db.DBTX, key string) (bool, error) {
	var value string
	err := conn.QueryRowContext(ctx, `SELECT value FROM app_flags WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("flag %s: %w", key, ErrNotFound)
		}
		return false, fmt.Errorf("reading flag %s: %w", key, err)
	}
	return value == "true", nil
}

func setFlag(ctx context.Context, conn db.DBTX, key string, value bool) error {
	_, err := conn.ExecContext(ctx,
		`INSERT INTO app_flags (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, boolToText(value), nowUTC())
	if err != nil {
		return fmt.Errorf("writing flag %s: %w", key, err)
	}
	return nil
}
