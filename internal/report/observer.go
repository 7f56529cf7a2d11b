package report

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// RunEvent records the outcome of one report submission.
type RunEvent struct {
	RequestID   string
	RequestedAt time.Time
	ModuleIDs   []string
	Success     bool
	Message     string
	TierCount   int
	LatencyMs   int64
	ErrorCode   string
	Stale       bool // the response arrived after the workflow moved on
}

// Observer receives report submission events for logging and history.
type Observer interface {
	OnRunComplete(event RunEvent)
}

// LogObserver writes run events to a zap logger.
type LogObserver struct {
	log *zap.Logger
}

// NewLogObserver creates an Observer that logs events to log.
func NewLogObserver(log *zap.Logger) *LogObserver {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogObserver{log: log}
}

func (o *LogObserver) OnRunComplete(e RunEvent) {
	fields := []zap.Field{
		zap.String("request_id", e.RequestID),
		zap.Strings("modules", e.ModuleIDs),
		zap.Int64("latency_ms", e.LatencyMs),
	}
	switch {
	case e.Stale:
		o.log.Debug("report response discarded", fields...)
	case e.Success:
		o.log.Info("report completed", append(fields, zap.Int("tiers", e.TierCount))...)
	default:
		o.log.Warn("report failed", append(fields,
			zap.String("error_code", e.ErrorCode),
			zap.String("message", e.Message))...)
	}
}

// RunRecorder persists report runs.
type RunRecorder interface {
	Record(ctx context.Context, run *domain.ReportRun) error
}

// HistoryObserver records every non-stale run through a RunRecorder.
type HistoryObserver struct {
	rec RunRecorder
	log *zap.Logger
}

// NewHistoryObserver creates an Observer that persists runs to rec.
func NewHistoryObserver(rec RunRecorder, log *zap.Logger) *HistoryObserver {
	if log == nil {
		log = zap.NewNop()
	}
	return &HistoryObserver{rec: rec, log: log}
}

func (o *HistoryObserver) OnRunComplete(e RunEvent) {
	if e.Stale {
		return
	}
	run := &domain.ReportRun{
		RequestID:   e.RequestID,
		RequestedAt: e.RequestedAt,
		ModuleIDs:   e.ModuleIDs,
		Outcome:     domain.OutcomeFailure,
		Message:     e.Message,
		TierCount:   e.TierCount,
		LatencyMs:   e.LatencyMs,
	}
	if e.Success {
		run.Outcome = domain.OutcomeSuccess
	}
	if err := o.rec.Record(context.Background(), run); err != nil {
		o.log.Warn("recording report run", zap.String("request_id", e.RequestID), zap.Error(err))
	}
}

// MultiObserver fans events out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) OnRunComplete(e RunEvent) {
	for _, o := range m {
		if o != nil {
			o.OnRunComplete(e)
		}
	}
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnRunComplete(RunEvent) {}
