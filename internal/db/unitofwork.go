package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TxFunc is work done against one open transaction.
type TxFunc func(ctx context.Context, tx DBTX) error

// UnitOfWork runs a TxFunc inside one transaction. Repositories built on
// the supplied DBTX share that transaction.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// TxRunner implements UnitOfWork with database/sql transactions.
type TxRunner struct {
	db *sql.DB
}

func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

func (u *TxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return RunInTx(ctx, u.db, fn)
}

// RunInTx commits when fn succeeds and rolls back when it fails or panics.
// A failed rollback is reported alongside fn's error.
func RunInTx(ctx context.Context, db *sql.DB, fn TxFunc) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			err = errors.Join(err, fmt.Errorf("rolling back: %w", rbErr))
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		committed = true
		return fmt.Errorf("committing transaction: %w", err)
	}
	committed = true
	return nil
}
