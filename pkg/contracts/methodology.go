package contracts

// MethodologyType discriminates the closed set of scoring methodologies.
type MethodologyType string

const (
	MethodWeightedDimensions MethodologyType = "WEIGHTED_DIMENSIONS"
	MethodWeightedMeasures   MethodologyType = "WEIGHTED_MEASURES"
	MethodChecklist          MethodologyType = "CHECKLIST"
	MethodQTriplet           MethodologyType = "QTRIPLET"
	MethodMaturity           MethodologyType = "MATURITY"
)

// ValidMethodologyTypes lists every accepted methodology type, for boundary
// errors.
func ValidMethodologyTypes() []MethodologyType {
	return []MethodologyType{
		MethodWeightedDimensions, MethodWeightedMeasures,
		MethodChecklist, MethodQTriplet, MethodMaturity,
	}
}

// Methodology is the closed union of scoring methodologies. Scoring is a
// single dispatch on the variant tag; runtime type inspection must not
// spread beyond the scorer.
type Methodology interface {
	MethodologyType() MethodologyType
	methodologySealed()
}

// WeightedItem is one dimension or measure with its rollup weight.
type WeightedItem struct {
	ID     string  `json:"id"`
	Label  string  `json:"label,omitempty"`
	Weight float64 `json:"weight"`
}

// WeightedDimensionsMethodology scores equal-weighted dimensions.
type WeightedDimensionsMethodology struct {
	Items []WeightedItem `json:"items"`
}

// WeightedMeasuresMethodology scores equal-weighted measures.
type WeightedMeasuresMethodology struct {
	Items []WeightedItem `json:"items"`
}

// ChecklistRule is one pass/fail rule over a measure. A measure value below
// the threshold fails; an UNKNOWN measure propagates UNKNOWN.
type ChecklistRule struct {
	MeasureID string  `json:"measure_id"`
	Label     string  `json:"label,omitempty"`
	Required  bool    `json:"required"`
	Threshold float64 `json:"threshold"`
}

// ChecklistMethodology scores the fraction of rules that pass.
type ChecklistMethodology struct {
	Rules []ChecklistRule `json:"rules"`
}

// TripletMethodology partitions measures into completeness, consistency and
// accuracy buckets and averages the three bucket scores.
type TripletMethodology struct {
	Completeness []string `json:"completeness"`
	Consistency  []string `json:"consistency"`
	Accuracy     []string `json:"accuracy"`
}

// MaturityRule is one threshold comparison inside a maturity level. An
// UNKNOWN measure yields an UNKNOWN rule result.
type MaturityRule struct {
	MeasureID string  `json:"measure_id"`
	Threshold float64 `json:"threshold"`
}

// MaturityLevel is one ordered level; it is achieved when every rule passes.
type MaturityLevel struct {
	Level int            `json:"level"`
	Name  string         `json:"name"`
	Rules []MaturityRule `json:"rules,omitempty"`
}

// MaturityMethodology scores the highest achieved level of five ordered
// levels with monotonically increasing thresholds.
type MaturityMethodology struct {
	Levels []MaturityLevel `json:"levels"`
}

func (WeightedDimensionsMethodology) MethodologyType() MethodologyType {
	return MethodWeightedDimensions
}
func (WeightedMeasuresMethodology) MethodologyType() MethodologyType { return MethodWeightedMeasures }
func (ChecklistMethodology) MethodologyType() MethodologyType        { return MethodChecklist }
func (TripletMethodology) MethodologyType() MethodologyType          { return MethodQTriplet }
func (MaturityMethodology) MethodologyType() MethodologyType         { return MethodMaturity }

func (WeightedDimensionsMethodology) methodologySealed() {}
func (WeightedMeasuresMethodology) methodologySealed()   {}
func (ChecklistMethodology) methodologySealed()          {}
func (TripletMethodology) methodologySealed()            {}
func (MaturityMethodology) methodologySealed()           {}

// UnknownPolicy controls how UNKNOWN measure values affect rollups.
type UnknownPolicy string

const (
	// UnknownIgnore removes unknown values from the rollup denominator.
	UnknownIgnore UnknownPolicy = "ignore"
	// UnknownAsZero scores unknown values as zero.
	UnknownAsZero UnknownPolicy = "zero"
)

// ScoringConfig wraps a methodology with identity, the unknown-value policy
// and the readiness gate threshold.
type ScoringConfig struct {
	ID            string        `json:"id"`
	Label         string        `json:"label"`
	Methodology   Methodology   `json:"-"`
	Type          MethodologyType `json:"type"`
	UnknownPolicy UnknownPolicy `json:"unknown_policy"`
	GateThreshold float64       `json:"gate_threshold"` // fraction of max score, 0-1
}

// MeasureValue is a tri-state numeric: a coverage/quality value in [0,1] or
// UNKNOWN.
type MeasureValue struct {
	Value float64 `json:"value"`
	Known bool    `json:"known"`
}

// KnownValue builds a known measure value.
func KnownValue(v float64) MeasureValue { return MeasureValue{Value: v, Known: true} }

// UnknownValue builds an unknown measure value.
func UnknownValue() MeasureValue { return MeasureValue{} }

// ComponentScore is one scored dimension, measure, rule or bucket inside a
// score result.
type ComponentScore struct {
	ID      string   `json:"id"`
	Weight  float64  `json:"weight,omitempty"`
	Value   float64  `json:"value"`
	Unknown bool     `json:"unknown,omitempty"`
	Passed  TriState `json:"passed,omitempty"`
}

// ScoreResult is the scalar readiness outcome of applying a methodology to a
// population's measures, on a 0-100 scale.
type ScoreResult struct {
	Readiness     float64          `json:"readiness"`
	Unknown       bool             `json:"unknown"` // a required rule was UNKNOWN
	GatePassed    bool             `json:"gate_passed"`
	AchievedLevel int              `json:"achieved_level,omitempty"` // maturity only
	Components    []ComponentScore `json:"components,omitempty"`
}

// DimensionSpec is one externally authored dimension of a use case.
type DimensionSpec struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// MeasureSpec is one externally authored measure of a use case.
type MeasureSpec struct {
	ID     string   `json:"id"`
	Label  string   `json:"label,omitempty"`
	Signal SignalID `json:"signal,omitempty"`
}

// UseCaseSpec describes one target capability: the dimensions and measures a
// methodology is built from. Authored externally; declaration order is
// significant for checklist and triplet construction.
type UseCaseSpec struct {
	CapabilityID string          `json:"capability_id"`
	Name         string          `json:"name,omitempty"`
	Dimensions   []DimensionSpec `json:"dimensions,omitempty"`
	Measures     []MeasureSpec   `json:"measures,omitempty"`
}
