package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/syllabus/internal/db"
	"github.com/alexanderramin/syllabus/internal/domain"
)

// SQLiteReportRunRepo implements ReportRunRepo on the report_runs table.
type SQLiteReportRunRepo struct {
	db db.DBTX
}

// NewSQLiteReportRunRepo creates a ReportRunRepo.
func NewSQLiteReportRunRepo(conn db.DBTX) *SQLiteReportRunRepo {
	return &SQLiteReportRunRepo{db: conn}
}

// Record inserts run, assigning an ID and timestamp when they are unset.
func (r *SQLiteReportRunRepo) Record(ctx context.Context, run *domain.ReportRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.RequestedAt.IsZero() {
		run.RequestedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO report_runs (id, request_id, requested_at, module_ids, outcome, message, tier_count, latency_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.RequestID,
		run.RequestedAt.UTC().Format(timeLayout),
		joinIDs(run.ModuleIDs),
		string(run.Outcome),
		run.Message,
		run.TierCount,
		run.LatencyMs,
	)
	if err != nil {
		return fmt.Errorf("recording report run: %w", err)
	}
	return nil
}

func (r *SQLiteReportRunRepo) GetByRequestID(ctx context.Context, requestID string) (*domain.ReportRun, error) {
	row := r.db.QueryRowContext(ctx, selectRunCols+` WHERE request_id = ?`, requestID)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("report run %s: %w", requestID, ErrNotFound)
		}
		return nil, err
	}
	return run, nil
}

// ListRecent returns the newest runs first. A non-positive limit returns all.
func (r *SQLiteReportRunRepo) ListRecent(ctx context.Context, limit int) ([]*domain.ReportRun, error) {
	query := selectRunCols + ` ORDER BY requested_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing report runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.ReportRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

const selectRunCols = `SELECT id, request_id, requested_at, module_ids, outcome, message, tier_count, latency_ms FROM report_runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*domain.ReportRun, error) {
	var (
		run       domain.ReportRun
		requested string
		modules   string
		outcome   string
	)
	if err := s.Scan(&run.ID, &run.RequestID, &requested, &modules, &outcome,
		&run.Message, &run.TierCount, &run.LatencyMs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning report run: %w", err)
	}
	t, err := time.Parse(timeLayout, requested)
	if err != nil {
		return nil, fmt.Errorf("parsing requested_at %q: %w", requested, err)
	}
	run.RequestedAt = t
	run.ModuleIDs = splitIDs(modules)
	run.Outcome = domain.RunOutcome(outcome)
	return &run, nil
}
