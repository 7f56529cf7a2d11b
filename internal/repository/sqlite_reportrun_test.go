package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/testutil"
)

func TestReportRunRepo_RecordAndGet(t *testing.T) {
	repo := NewSQLiteReportRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	at := time.Date(2026, 3, 1, 9, 30, 0, 123, time.UTC)
	run := testutil.NewTestRun(testutil.WithRequestedAt(at), testutil.WithModules("m1", "m2-extra"))
	require.NoError(t, repo.Record(ctx, run))
	assert.NotEmpty(t, run.ID)

	got, err := repo.GetByRequestID(ctx, run.RequestID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, []string{"m1", "m2-extra"}, got.ModuleIDs)
	assert.Equal(t, domain.OutcomeSuccess, got.Outcome)
	assert.Equal(t, 4, got.TierCount)
	assert.Equal(t, int64(120), got.LatencyMs)
	assert.True(t, at.Equal(got.RequestedAt))
}

func TestReportRunRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteReportRunRepo(testutil.NewTestDB(t))

	_, err := repo.GetByRequestID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportRunRepo_ListRecent_NewestFirst(t *testing.T) {
	repo := NewSQLiteReportRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, offset := range []time.Duration{0, 1500 * time.Millisecond, 500 * time.Millisecond} {
		run := testutil.NewTestRun(testutil.WithRequestedAt(base.Add(offset)))
		run.Message = string(rune('a' + i))
		require.NoError(t, repo.Record(ctx, run))
	}
	require.NoError(t, repo.Record(ctx, testutil.NewTestRun(
		testutil.WithRequestedAt(base.Add(-time.Hour)),
		testutil.WithFailure("service down"),
	)))

	runs, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "b", runs[0].Message)
	assert.Equal(t, "c", runs[1].Message)
	assert.Equal(t, "a", runs[2].Message)

	all, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, domain.OutcomeFailure, all[3].Outcome)
	assert.Equal(t, "service down", all[3].Message)
}

func TestReportRunRepo_EmptyModuleList(t *testing.T) {
	repo := NewSQLiteReportRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	run := testutil.NewTestRun(testutil.WithModules())
	require.NoError(t, repo.Record(ctx, run))

	got, err := repo.GetByRequestID(ctx, run.RequestID)
	require.NoError(t, err)
	assert.Empty(t, got.ModuleIDs)
}
