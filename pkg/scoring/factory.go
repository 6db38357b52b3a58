// Package scoring builds scoring methodologies from use-case specs and
// applies them to bound measure values. All scoring entry points go
// through the one factory and the one dispatch; call sites never score
// directly.
package scoring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/metalake/readiness/pkg/contracts"
)

// ErrUnknownMethodology reports a methodology type outside the closed set.
var ErrUnknownMethodology = errors.New("unknown methodology type")

// checklistThreshold is the pass threshold applied to every checklist rule.
const checklistThreshold = 0.8

// requiredRuleCount marks how many leading measures become required
// checklist rules, in declaration order.
const requiredRuleCount = 2

// tripletBuckets maps measure-id substrings to the three quality buckets,
// in bucket order: completeness, consistency, accuracy.
var tripletBuckets = [3][]string{
	{"description", "certified", "semantic"},
	{"owner", "runbook", "relationship", "lineage"},
	{"quality", "freshness", "incident", "dq", "volatility"},
}

// maturityThresholds holds the per-level thresholds for owner coverage,
// description coverage and lineage coverage. A negative threshold means the
// level has no rule on that measure.
var maturityThresholds = []struct {
	name                string
	owner, desc, lineage float64
}{
	{"Initial", -1, -1, -1},
	{"Managed", 0.50, -1, -1},
	{"Defined", 0.70, 0.50, -1},
	{"Measured", 0.85, 0.70, -1},
	{"Optimized", 0.95, 0.90, 0.80},
}

// BuildMethodology constructs one of the five methodology variants from a
// use-case spec. An unrecognized type is a boundary error and reports the
// valid set.
func BuildMethodology(spec contracts.UseCaseSpec, methodType contracts.MethodologyType) (contracts.Methodology, error) {
	switch methodType {
	case contracts.MethodWeightedDimensions:
		items := make([]contracts.WeightedItem, 0, len(spec.Dimensions))
		weight := equalWeight(len(spec.Dimensions))
		for _, d := range spec.Dimensions {
			items = append(items, contracts.WeightedItem{ID: d.ID, Label: d.Label, Weight: weight})
		}
		return contracts.WeightedDimensionsMethodology{Items: items}, nil

	case contracts.MethodWeightedMeasures:
		items := make([]contracts.WeightedItem, 0, len(spec.Measures))
		weight := equalWeight(len(spec.Measures))
		for _, m := range spec.Measures {
			items = append(items, contracts.WeightedItem{ID: m.ID, Label: m.Label, Weight: weight})
		}
		return contracts.WeightedMeasuresMethodology{Items: items}, nil

	case contracts.MethodChecklist:
		rules := make([]contracts.ChecklistRule, 0, len(spec.Measures))
		for i, m := range spec.Measures {
			rules = append(rules, contracts.ChecklistRule{
				MeasureID: m.ID,
				Label:     m.Label,
				Required:  i < requiredRuleCount,
				Threshold: checklistThreshold,
			})
		}
		return contracts.ChecklistMethodology{Rules: rules}, nil

	case contracts.MethodQTriplet:
		buckets := partitionTriplet(spec.Measures)
		return contracts.TripletMethodology{
			Completeness: buckets[0],
			Consistency:  buckets[1],
			Accuracy:     buckets[2],
		}, nil

	case contracts.MethodMaturity:
		return buildMaturity(spec), nil

	default:
		return nil, fmt.Errorf("%w %q, valid types: %v",
			ErrUnknownMethodology, methodType, contracts.ValidMethodologyTypes())
	}
}

// equalWeight spreads weight 1/n over n items; zero items yields weight 1,
// a defined outcome rather than an error.
func equalWeight(n int) float64 {
	if n == 0 {
		return 1
	}
	return 1 / float64(n)
}

// partitionTriplet assigns measures to the three buckets by id substring.
// An empty bucket falls back to the single positional measure at the
// bucket's index, so no bucket is empty while measures exist.
func partitionTriplet(measures []contracts.MeasureSpec) [3][]string {
	var buckets [3][]string
	for _, m := range measures {
		id := strings.ToLower(m.ID)
		for b, keywords := range tripletBuckets {
			for _, kw := range keywords {
				if strings.Contains(id, kw) {
					buckets[b] = append(buckets[b], m.ID)
					break
				}
			}
		}
	}
	for b := range buckets {
		if len(buckets[b]) == 0 && b < len(measures) {
			buckets[b] = []string{measures[b].ID}
		}
	}
	return buckets
}

// buildMaturity constructs the five ordered levels with monotonically
// increasing thresholds over owner, description and lineage coverage.
func buildMaturity(spec contracts.UseCaseSpec) contracts.MaturityMethodology {
	ownerID := resolveMeasureID(spec.Measures, "owner")
	descID := resolveMeasureID(spec.Measures, "description")
	lineageID := resolveMeasureID(spec.Measures, "lineage")

	levels := make([]contracts.MaturityLevel, 0, len(maturityThresholds))
	for i, t := range maturityThresholds {
		level := contracts.MaturityLevel{Level: i + 1, Name: t.name}
		if t.owner >= 0 {
			level.Rules = append(level.Rules, contracts.MaturityRule{MeasureID: ownerID, Threshold: t.owner})
		}
		if t.desc >= 0 {
			level.Rules = append(level.Rules, contracts.MaturityRule{MeasureID: descID, Threshold: t.desc})
		}
		if t.lineage >= 0 {
			level.Rules = append(level.Rules, contracts.MaturityRule{MeasureID: lineageID, Threshold: t.lineage})
		}
		levels = append(levels, level)
	}
	return contracts.MaturityMethodology{Levels: levels}
}

// resolveMeasureID finds the declared measure whose id contains the cue,
// falling back to the cue itself so rules stay well-formed even when the
// use case omits the measure.
func resolveMeasureID(measures []contracts.MeasureSpec, cue string) string {
	for _, m := range measures {
		if strings.Contains(strings.ToLower(m.ID), cue) {
			return m.ID
		}
	}
	return cue
}

// Option adjusts a scoring config built by BuildScoringConfig.
type Option func(*contracts.ScoringConfig)

// WithUnknownPolicy overrides the default ignore-in-rollup policy.
func WithUnknownPolicy(p contracts.UnknownPolicy) Option {
	return func(c *contracts.ScoringConfig) { c.UnknownPolicy = p }
}

// WithGateThreshold overrides the default 0.75 readiness gate.
func WithGateThreshold(t float64) Option {
	return func(c *contracts.ScoringConfig) { c.GateThreshold = t }
}

// BuildScoringConfig wraps a methodology with identity, the unknown-value
// policy and the readiness gate threshold. This is the single factory for
// scoring configs.
func BuildScoringConfig(id, label string, m contracts.Methodology, opts ...Option) contracts.ScoringConfig {
	cfg := contracts.ScoringConfig{
		ID:            id,
		Label:         label,
		Methodology:   m,
		Type:          m.MethodologyType(),
		UnknownPolicy: contracts.UnknownIgnore,
		GateThreshold: 0.75,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
