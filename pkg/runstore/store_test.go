package runstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalake/readiness/pkg/contracts"
)

var storeClock = func() time.Time {
	return time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
}

func TestAddRunNumbersAndBaseline(t *testing.T) {
	store := NewStore(NewMemoryRepository()).WithClock(storeClock)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		run, err := store.AddRun(ctx, "ai-readiness", "domain-a", float64(50+i), contracts.GapSnapshot{Total: 10 - i}, nil)
		require.NoError(t, err)
		assert.Equal(t, i, run.RunNumber)
		assert.Equal(t, i == 1, run.IsBaseline)
	}

	runs, err := store.GetRuns(ctx, "ai-readiness", "domain-a")
	require.NoError(t, err)
	require.Len(t, runs, 5)
	for i, r := range runs {
		assert.Equal(t, i+1, r.RunNumber)
	}
}

func TestAddRunIsNotIdempotent(t *testing.T) {
	store := NewStore(NewMemoryRepository()).WithClock(storeClock)
	ctx := context.Background()

	_, err := store.AddRun(ctx, "cap", "scope", 10, contracts.GapSnapshot{}, nil)
	require.NoError(t, err)
	_, err = store.AddRun(ctx, "cap", "scope", 10, contracts.GapSnapshot{}, nil)
	require.NoError(t, err)

	runs, err := store.GetRuns(ctx, "cap", "scope")
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestScopesAreIndependent(t *testing.T) {
	store := NewStore(NewMemoryRepository()).WithClock(storeClock)
	ctx := context.Background()

	runA, err := store.AddRun(ctx, "cap", "scope-a", 10, contracts.GapSnapshot{}, nil)
	require.NoError(t, err)
	runB, err := store.AddRun(ctx, "cap", "scope-b", 10, contracts.GapSnapshot{}, nil)
	require.NoError(t, err)

	assert.True(t, runA.IsBaseline)
	assert.True(t, runB.IsBaseline)
	assert.Equal(t, 1, runB.RunNumber)
}

func TestTrimPreservesBaseline(t *testing.T) {
	store := NewStore(NewMemoryRepository()).WithClock(storeClock)
	ctx := context.Background()

	for i := 0; i < 55; i++ {
		_, err := store.AddRun(ctx, "cap", "scope", float64(i), contracts.GapSnapshot{Total: i}, nil)
		require.NoError(t, err)
	}

	runs, err := store.GetRuns(ctx, "cap", "scope")
	require.NoError(t, err)
	require.Len(t, runs, maxRunsPerKey)

	// The original baseline survives eviction regardless of age.
	assert.True(t, runs[0].IsBaseline)
	assert.Equal(t, 1, runs[0].RunNumber)
	// The rest is the most recent window and numbering never restarts.
	assert.Equal(t, 55, runs[len(runs)-1].RunNumber)
	seen := make(map[int]bool)
	for _, r := range runs {
		assert.False(t, seen[r.RunNumber], "duplicate run number %d", r.RunNumber)
		seen[r.RunNumber] = true
	}
}

func TestResetBaseline(t *testing.T) {
	store := NewStore(NewMemoryRepository()).WithClock(storeClock)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.AddRun(ctx, "cap", "scope", 10, contracts.GapSnapshot{}, nil)
		require.NoError(t, err)
	}

	require.NoError(t, store.ResetBaseline(ctx, "cap", "scope", 2))

	runs, err := store.GetRuns(ctx, "cap", "scope")
	require.NoError(t, err)
	baselines := 0
	for _, r := range runs {
		if r.IsBaseline {
			baselines++
			assert.Equal(t, 2, r.RunNumber)
		}
	}
	assert.Equal(t, 1, baselines)
}

func TestResetBaselineUnknownRun(t *testing.T) {
	store := NewStore(NewMemoryRepository()).WithClock(storeClock)
	ctx := context.Background()

	_, err := store.AddRun(ctx, "cap", "scope", 10, contracts.GapSnapshot{}, nil)
	require.NoError(t, err)

	err = store.ResetBaseline(ctx, "cap", "scope", 9)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestGetGapTrajectory(t *testing.T) {
	store := NewStore(NewMemoryRepository()).WithClock(storeClock)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.AddRun(ctx, "cap", "scope", float64(60+i*10),
			contracts.GapSnapshot{Total: 9 - i, HighSeverity: 3 - i}, nil)
		require.NoError(t, err)
	}

	points, err := store.GetGapTrajectory(ctx, "cap", "scope")
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, 1, points[0].RunNumber)
	assert.Equal(t, 9, points[0].TotalGaps)
	assert.Equal(t, 3, points[0].HighSeverityGaps)
	assert.InDelta(t, 80.0, points[2].Readiness, 1e-9)
}

func TestGetRunSummaryTrend(t *testing.T) {
	tests := []struct {
		name           string
		baselineGaps   int
		latestGaps     int
		baselineScore  float64
		latestScore    float64
		want           contracts.Trend
	}{
		{"fewer gaps improves", 10, 8, 50, 50, contracts.TrendImproving},
		{"readiness jump improves", 10, 10, 50, 60, contracts.TrendImproving},
		{"more gaps regresses", 10, 12, 50, 50, contracts.TrendRegressing},
		{"readiness drop regresses", 10, 10, 50, 40, contracts.TrendRegressing},
		{"small moves are stable", 10, 10, 50, 53, contracts.TrendStable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := NewStore(NewMemoryRepository()).WithClock(storeClock)
			ctx := context.Background()

			_, err := store.AddRun(ctx, "cap", "scope", tc.baselineScore, contracts.GapSnapshot{Total: tc.baselineGaps}, nil)
			require.NoError(t, err)
			_, err = store.AddRun(ctx, "cap", "scope", tc.latestScore, contracts.GapSnapshot{Total: tc.latestGaps}, nil)
			require.NoError(t, err)

			summary, err := store.GetRunSummary(ctx, "cap", "scope")
			require.NoError(t, err)
			assert.Equal(t, tc.want, summary.Trend)
			assert.Equal(t, 1, summary.BaselineRun)
			assert.Equal(t, 2, summary.LatestRun)
			assert.Equal(t, tc.latestGaps-tc.baselineGaps, summary.GapDelta)
		})
	}
}

func TestGetRunSummaryEmptyScope(t *testing.T) {
	store := NewStore(NewMemoryRepository()).WithClock(storeClock)
	_, err := store.GetRunSummary(context.Background(), "cap", "missing")
	assert.ErrorIs(t, err, ErrNoBaseline)
}
