package contracts

import "time"

// SourceEvaluation is the outcome of evaluating one field source against one
// asset: the tri-state value, a snapshot of the raw value examined, and the
// failure reason when the value is false.
type SourceEvaluation struct {
	Value         TriState      `json:"value"`
	RawValue      any           `json:"raw_value,omitempty"`
	FailureReason FailureReason `json:"failure_reason,omitempty"`
}

// FieldExamination is one audit record in the evidence trail: every field a
// signal evaluation touched, regardless of outcome.
type FieldExamination struct {
	FieldID       string        `json:"field_id"`
	Signal        SignalID      `json:"signal"`
	SourceType    SourceType    `json:"source_type,omitempty"`
	Value         TriState      `json:"value"`
	RawValue      any           `json:"raw_value,omitempty"`
	FailureReason FailureReason `json:"failure_reason,omitempty"`
}

// EnhancedSignalResult is one signal's composed outcome for one asset.
// FailureReason is set iff Value is false.
type EnhancedSignalResult struct {
	Signal        SignalID      `json:"signal"`
	Value         TriState      `json:"value"`
	FailureReason FailureReason `json:"failure_reason,omitempty"`
	FieldsChecked []string      `json:"fields_checked,omitempty"`
}

// EvidenceMetadata is the timestamped audit block attached to each evidence
// record.
type EvidenceMetadata struct {
	EvidenceID     string             `json:"evidence_id"`
	EvaluatedAt    time.Time          `json:"evaluated_at"`
	FieldsExamined []FieldExamination `json:"fields_examined"`
	ContentHash    string             `json:"content_hash,omitempty"`
}

// EnhancedAssetEvidence is the complete, immutable evaluation of one asset:
// all seven signals, gap counts, the raw attributes for drill-down, and the
// field-examination trail.
type EnhancedAssetEvidence struct {
	AssetGUID        string                 `json:"asset_guid"`
	AssetName        string                 `json:"asset_name,omitempty"`
	AssetType        string                 `json:"asset_type"`
	Signals          []EnhancedSignalResult `json:"signals"`
	GapCount         int                    `json:"gap_count"`
	HighSeverityGaps int                    `json:"high_severity_gaps"`
	RawAttributes    map[string]any         `json:"raw_attributes,omitempty"`
	Metadata         EvidenceMetadata       `json:"metadata"`
}

// Signal returns the result for one signal, if present.
func (e *EnhancedAssetEvidence) Signal(id SignalID) (EnhancedSignalResult, bool) {
	for _, s := range e.Signals {
		if s.Signal == id {
			return s, true
		}
	}
	return EnhancedSignalResult{}, false
}

// SignalBreakdown aggregates one signal's outcomes across a population, for
// rollup and pivot views.
type SignalBreakdown struct {
	Signal   SignalID `json:"signal"`
	True     int      `json:"true"`
	False    int      `json:"false"`
	Unknown  int      `json:"unknown"`
	Coverage float64  `json:"coverage"` // true / (true + false), unknowns excluded
}

// FieldCoverage reports how often one canonical field was populated across a
// population.
type FieldCoverage struct {
	FieldID         string  `json:"field_id"`
	Populated       int     `json:"populated"`
	Total           int     `json:"total"`
	CoveragePercent float64 `json:"coverage_percent"`
}
