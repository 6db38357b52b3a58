package runstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/metalake/readiness/pkg/contracts"
	"github.com/metalake/readiness/pkg/observability"
)

// maxRunsPerKey caps the run list per scope key. The baseline is never
// evicted regardless of age.
const maxRunsPerKey = 50

// Store owns run-list semantics over an injected repository: numbering,
// baseline assignment, and trimming. Writes to one store must come from a
// single logical writer; the internal lock only guards against accidental
// concurrent use.
type Store struct {
	repo   Repository
	logger *slog.Logger
	clock  func() time.Time
	obs    *observability.Provider
}

// NewStore creates a run store over a repository.
func NewStore(repo Repository) *Store {
	return &Store{
		repo:   repo,
		logger: slog.Default(),
		clock:  time.Now,
	}
}

// WithClock overrides the clock for deterministic testing.
func (s *Store) WithClock(clock func() time.Time) *Store {
	s.clock = clock
	return s
}

// WithLogger overrides the store logger.
func (s *Store) WithLogger(l *slog.Logger) *Store {
	s.logger = l
	return s
}

// WithObservability attaches a telemetry provider.
func (s *Store) WithObservability(p *observability.Provider) *Store {
	s.obs = p
	return s
}

// AddRun appends a run for a scope: run number is list length plus one, the
// timestamp is now, and the baseline flag is set only on the first run for
// the key. AddRun is append-only and not idempotent; calling it twice
// records two runs.
func (s *Store) AddRun(ctx context.Context, capabilityID, scopeID string, readiness float64, gaps contracts.GapSnapshot, evidence []contracts.EvidenceEntry) (*contracts.EvaluationRun, error) {
	key := contracts.ScopeKey(capabilityID, scopeID)
	runs, err := s.repo.LoadRuns(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("add run for %q: %w", key, err)
	}

	// Number off the last run, not the list length; trimming shortens the
	// list but numbering never restarts.
	nextNumber := 1
	if len(runs) > 0 {
		nextNumber = runs[len(runs)-1].RunNumber + 1
	}

	run := contracts.EvaluationRun{
		RunID:        uuid.NewString(),
		CapabilityID: capabilityID,
		ScopeID:      scopeID,
		RunNumber:    nextNumber,
		Timestamp:    s.clock().UTC(),
		IsBaseline:   len(runs) == 0,
		Readiness:    readiness,
		Gaps:         gaps,
		Evidence:     evidence,
	}
	runs = append(runs, run)
	runs = trim(runs)

	if err := s.repo.SaveRuns(ctx, key, runs); err != nil {
		return nil, fmt.Errorf("save runs for %q: %w", key, err)
	}
	if s.obs != nil {
		s.obs.RecordRun(ctx, capabilityID)
	}
	s.logger.Info("run recorded",
		"key", key,
		"run", run.RunNumber,
		"baseline", run.IsBaseline,
		"readiness", run.Readiness,
		"gaps", run.Gaps.Total)
	return &run, nil
}

// trim caps the list at maxRunsPerKey, keeping the baseline plus the most
// recent non-baseline runs, in original order.
func trim(runs []contracts.EvaluationRun) []contracts.EvaluationRun {
	if len(runs) <= maxRunsPerKey {
		return runs
	}
	budget := maxRunsPerKey
	hasBaseline := false
	for _, r := range runs {
		if r.IsBaseline {
			hasBaseline = true
			budget--
			break
		}
	}
	keep := make(map[int]bool, budget)
	for i := len(runs) - 1; i >= 0 && budget > 0; i-- {
		if runs[i].IsBaseline {
			continue
		}
		keep[i] = true
		budget--
	}
	out := make([]contracts.EvaluationRun, 0, maxRunsPerKey)
	for i, r := range runs {
		if (r.IsBaseline && hasBaseline) || keep[i] {
			out = append(out, r)
		}
	}
	return out
}

// GetRuns returns the run list for a scope in run-number order.
func (s *Store) GetRuns(ctx context.Context, capabilityID, scopeID string) ([]contracts.EvaluationRun, error) {
	return s.repo.LoadRuns(ctx, contracts.ScopeKey(capabilityID, scopeID))
}

// ResetBaseline clears every baseline flag for the scope and sets exactly
// one on the named run.
func (s *Store) ResetBaseline(ctx context.Context, capabilityID, scopeID string, runNumber int) error {
	key := contracts.ScopeKey(capabilityID, scopeID)
	runs, err := s.repo.LoadRuns(ctx, key)
	if err != nil {
		return fmt.Errorf("reset baseline for %q: %w", key, err)
	}

	found := false
	for i := range runs {
		runs[i].IsBaseline = runs[i].RunNumber == runNumber
		if runs[i].IsBaseline {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: run %d in %q", ErrRunNotFound, runNumber, key)
	}
	if err := s.repo.SaveRuns(ctx, key, runs); err != nil {
		return fmt.Errorf("save runs for %q: %w", key, err)
	}
	s.logger.Info("baseline reset", "key", key, "run", runNumber)
	return nil
}

// GetGapTrajectory projects per-run chart points in run order.
func (s *Store) GetGapTrajectory(ctx context.Context, capabilityID, scopeID string) ([]contracts.GapTrajectoryPoint, error) {
	runs, err := s.repo.LoadRuns(ctx, contracts.ScopeKey(capabilityID, scopeID))
	if err != nil {
		return nil, err
	}
	points := make([]contracts.GapTrajectoryPoint, 0, len(runs))
	for _, r := range runs {
		points = append(points, contracts.GapTrajectoryPoint{
			Date:             r.Timestamp,
			RunNumber:        r.RunNumber,
			TotalGaps:        r.Gaps.Total,
			HighSeverityGaps: r.Gaps.HighSeverity,
			Readiness:        r.Readiness,
		})
	}
	return points, nil
}

// GetRunSummary compares the latest run against the baseline and derives
// the trend: fewer gaps or a readiness gain above five points is IMPROVING,
// more gaps or a readiness loss below minus five is REGRESSING, else
// STABLE.
func (s *Store) GetRunSummary(ctx context.Context, capabilityID, scopeID string) (*contracts.RunSummary, error) {
	key := contracts.ScopeKey(capabilityID, scopeID)
	runs, err := s.repo.LoadRuns(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoBaseline, key)
	}

	baseline := runs[0]
	for _, r := range runs {
		if r.IsBaseline {
			baseline = r
			break
		}
	}
	latest := runs[len(runs)-1]

	gapDelta := latest.Gaps.Total - baseline.Gaps.Total
	readinessDelta := latest.Readiness - baseline.Readiness

	trend := contracts.TrendStable
	switch {
	case gapDelta < 0 || readinessDelta > 5:
		trend = contracts.TrendImproving
	case gapDelta > 0 || readinessDelta < -5:
		trend = contracts.TrendRegressing
	}

	return &contracts.RunSummary{
		CapabilityID:   capabilityID,
		ScopeID:        scopeID,
		RunCount:       len(runs),
		LatestRun:      latest.RunNumber,
		BaselineRun:    baseline.RunNumber,
		GapDelta:       gapDelta,
		ReadinessDelta: readinessDelta,
		Trend:          trend,
	}, nil
}
