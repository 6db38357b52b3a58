// Package runstore persists evaluation runs per (capability, scope) key and
// derives deltas, trajectories and trend summaries from the run history.
// The store owns run-list semantics; persistence is an injected repository
// so the core stays storage-agnostic.
package runstore

import (
	"context"
	"errors"
	"sync"

	"github.com/metalake/readiness/pkg/contracts"
)

var (
	// ErrRunNotFound reports a run number absent from a scope's history.
	ErrRunNotFound = errors.New("run not found")
	// ErrNoBaseline reports a scope with no runs to summarize against.
	ErrNoBaseline = errors.New("no baseline run")
)

// Repository loads and saves the full run list for one scope key. The
// store serializes access; implementations need no internal locking beyond
// their own storage safety.
type Repository interface {
	LoadRuns(ctx context.Context, key string) ([]contracts.EvaluationRun, error)
	SaveRuns(ctx context.Context, key string, runs []contracts.EvaluationRun) error
}

// MemoryRepository keeps run lists in process memory.
type MemoryRepository struct {
	mu   sync.RWMutex
	runs map[string][]contracts.EvaluationRun
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{runs: make(map[string][]contracts.EvaluationRun)}
}

// LoadRuns returns a copy of the stored list so callers cannot mutate the
// repository's state in place.
func (r *MemoryRepository) LoadRuns(_ context.Context, key string) ([]contracts.EvaluationRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.runs[key]
	out := make([]contracts.EvaluationRun, len(stored))
	copy(out, stored)
	return out, nil
}

// SaveRuns replaces the stored list for a key.
func (r *MemoryRepository) SaveRuns(_ context.Context, key string, runs []contracts.EvaluationRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]contracts.EvaluationRun, len(runs))
	copy(stored, runs)
	r.runs[key] = stored
	return nil
}
