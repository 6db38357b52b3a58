package contracts

import (
	"fmt"
	"time"
)

// ScopeKey builds the storage key for a (capability, scope) pair.
func ScopeKey(capabilityID, scopeID string) string {
	return fmt.Sprintf("%s:%s", capabilityID, scopeID)
}

// EvidenceEntry is one measure/asset evidence cell carried on a run, keyed
// by "measureId:assetId" for delta computation.
type EvidenceEntry struct {
	MeasureID string    `json:"measure_id"`
	AssetID   string    `json:"asset_id"`
	Value     TriState  `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// Key returns the delta key for the entry.
func (e EvidenceEntry) Key() string {
	return fmt.Sprintf("%s:%s", e.MeasureID, e.AssetID)
}

// GapSnapshot summarizes the gap ledger at the moment of a run.
type GapSnapshot struct {
	Total        int              `json:"total"`
	HighSeverity int              `json:"high_severity"`
	BySignal     map[SignalID]int `json:"by_signal,omitempty"`
}

// EvaluationRun is one persisted evaluation outcome for a (capability,
// scope) pair. Runs are append-only and immutable except for baseline
// reassignment.
type EvaluationRun struct {
	RunID        string          `json:"run_id"`
	CapabilityID string          `json:"capability_id"`
	ScopeID      string          `json:"scope_id"`
	RunNumber    int             `json:"run_number"`
	Timestamp    time.Time       `json:"timestamp"`
	IsBaseline   bool            `json:"is_baseline"`
	Readiness    float64         `json:"readiness"` // 0-100
	Gaps         GapSnapshot     `json:"gaps"`
	Evidence     []EvidenceEntry `json:"evidence,omitempty"`
}

// DeltaType classifies an evidence change between two runs.
type DeltaType string

const (
	DeltaAdded   DeltaType = "ADDED"
	DeltaRemoved DeltaType = "REMOVED"
	DeltaChanged DeltaType = "CHANGED"
)

// EvidenceDelta is one evidence-cell difference between two runs.
type EvidenceDelta struct {
	Key       string    `json:"key"`
	MeasureID string    `json:"measure_id"`
	AssetID   string    `json:"asset_id"`
	Type      DeltaType `json:"type"`
	From      *TriState `json:"from,omitempty"`
	To        *TriState `json:"to,omitempty"`
	FromRun   int       `json:"from_run"`
	ToRun     int       `json:"to_run"`
	Timestamp time.Time `json:"timestamp"`
}

// GapTrajectoryPoint is one per-run projection for progress charts.
type GapTrajectoryPoint struct {
	Date             time.Time `json:"date"`
	RunNumber        int       `json:"run_number"`
	TotalGaps        int       `json:"total_gaps"`
	HighSeverityGaps int       `json:"high_severity_gaps"`
	Readiness        float64   `json:"readiness"`
}

// Trend classifies score evolution versus the baseline run.
type Trend string

const (
	TrendImproving  Trend = "IMPROVING"
	TrendRegressing Trend = "REGRESSING"
	TrendStable     Trend = "STABLE"
)

// RunSummary compares the latest run against the baseline.
type RunSummary struct {
	CapabilityID   string  `json:"capability_id"`
	ScopeID        string  `json:"scope_id"`
	RunCount       int     `json:"run_count"`
	LatestRun      int     `json:"latest_run"`
	BaselineRun    int     `json:"baseline_run"`
	GapDelta       int     `json:"gap_delta"`
	ReadinessDelta float64 `json:"readiness_delta"`
	Trend          Trend   `json:"trend"`
}
