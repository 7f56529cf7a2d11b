package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// NewTestCatalog builds n domains d0..d(n-1). Domain i holds modules
// m(2i+1) and m(2i+2), so the first domain carries m1 and m2.
func NewTestCatalog(t *testing.T, n int) *domain.Catalog {
	t.Helper()
	ds := make([]domain.Domain, 0, n)
	for i := 0; i < n; i++ {
		ds = append(ds, domain.Domain{
			ID:    fmt.Sprintf("d%d", i),
			Title: fmt.Sprintf("Domain %d", i),
			Modules: []domain.Module{
				{ID: fmt.Sprintf("m%d", 2*i+1), Name: "first", Description: "first module"},
				{ID: fmt.Sprintf("m%d", 2*i+2), Name: "second", Description: "second module"},
			},
		})
	}
	c, err := domain.NewCatalog(ds)
	if err != nil {
		t.Fatalf("building test catalog: %v", err)
	}
	return c
}

// NewTestTiers returns n minimal tiers labeled "Grade 1".."Grade n".
func NewTestTiers(n int) []domain.Tier {
	out := make([]domain.Tier, n)
	for i := range out {
		out[i] = domain.Tier{
			GradeLabel:   fmt.Sprintf("Grade %d", i+1),
			DisplayLabel: fmt.Sprintf("Tier %d", i+1),
			Schedule:     []domain.ScheduleEntry{{Day: "Day 1", Content: "kickoff"}},
		}
	}
	return out
}

// RunOption customizes a test report run.
type RunOption func(*domain.ReportRun)

func WithRequestedAt(at time.Time) RunOption {
	return func(r *domain.ReportRun) { r.RequestedAt = at }
}

func WithFailure(msg string) RunOption {
	return func(r *domain.ReportRun) {
		r.Outcome = domain.OutcomeFailure
		r.Message = msg
		r.TierCount = 0
	}
}

func WithModules(ids ...string) RunOption {
	return func(r *domain.ReportRun) { r.ModuleIDs = ids }
}

// NewTestRun returns a successful four-tier run over m1 and m2.
func NewTestRun(opts ...RunOption) *domain.ReportRun {
	r := &domain.ReportRun{
		RequestID:   uuid.NewString(),
		RequestedAt: time.Now().UTC(),
		ModuleIDs:   []string{"m1", "m2"},
		Outcome:     domain.OutcomeSuccess,
		TierCount:   4,
		LatencyMs:   120,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
