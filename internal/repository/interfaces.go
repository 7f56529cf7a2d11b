package repository

import (
	"context"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// FlagRepo stores boolean application flags.
type FlagRepo interface {
	Get(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key string, value bool) error
	// CheckAndSet reads key and writes true if it was absent, in one
	// transaction. It reports whether the key was already present.
	CheckAndSet(ctx context.Context, key string) (present bool, err error)
}

// ReportRunRepo stores the history of report submissions.
type ReportRunRepo interface {
	Record(ctx context.Context, run *domain.ReportRun) error
	GetByRequestID(ctx context.Context, requestID string) (*domain.ReportRun, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.ReportRun, error)
}
