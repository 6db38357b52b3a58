package evaluate

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/metalake/readiness/pkg/contracts"
	"github.com/metalake/readiness/pkg/fieldcompat"
	"github.com/metalake/readiness/pkg/tenantconfig"
)

// PopulationResult aggregates the evidence of one asset population for
// rollup, pivot and scoring consumers.
type PopulationResult struct {
	Evidence         []*contracts.EnhancedAssetEvidence `json:"evidence"`
	Breakdowns       []contracts.SignalBreakdown        `json:"breakdowns"`
	Coverage         []contracts.FieldCoverage          `json:"coverage"`
	TotalAssets      int                                `json:"total_assets"`
	TotalGaps        int                                `json:"total_gaps"`
	HighSeverityGaps int                                `json:"high_severity_gaps"`
	GapsBySignal     map[contracts.SignalID]int         `json:"gaps_by_signal"`
}

// EvaluatePopulation evaluates every asset and aggregates signal
// breakdowns, gap totals and per-field coverage. Assets are independent;
// a failure on one asset aborts the run rather than emitting partial
// evidence for it.
func (e *Evaluator) EvaluatePopulation(ctx context.Context, assets []contracts.Asset, cfg *contracts.TenantConfig) (*PopulationResult, error) {
	start := e.clock()

	result := &PopulationResult{
		TotalAssets:  len(assets),
		GapsBySignal: make(map[contracts.SignalID]int),
	}

	counts := make(map[contracts.SignalID]*contracts.SignalBreakdown)
	for _, id := range contracts.AllSignals() {
		counts[id] = &contracts.SignalBreakdown{Signal: id}
	}

	for i := range assets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		evidence, err := e.EvaluateAsset(&assets[i], cfg)
		if err != nil {
			return nil, fmt.Errorf("evaluate asset %s: %w", assets[i].GUID, err)
		}
		result.Evidence = append(result.Evidence, evidence)
		result.TotalGaps += evidence.GapCount
		result.HighSeverityGaps += evidence.HighSeverityGaps

		for _, s := range evidence.Signals {
			b := counts[s.Signal]
			switch s.Value {
			case contracts.TriTrue:
				b.True++
			case contracts.TriFalse:
				b.False++
				result.GapsBySignal[s.Signal]++
			default:
				b.Unknown++
			}
		}
	}

	for _, id := range contracts.AllSignals() {
		b := counts[id]
		if known := b.True + b.False; known > 0 {
			b.Coverage = float64(b.True) / float64(known)
		}
		result.Breakdowns = append(result.Breakdowns, *b)
	}

	result.Coverage = e.fieldCoverage(assets, cfg)

	duration := e.clock().Sub(start)
	if e.obs != nil {
		_, span := e.obs.StartSpan(ctx, "readiness.evaluate_population",
			attribute.Int("assets", len(assets)),
			attribute.Int("gaps", result.TotalGaps),
		)
		span.End()
		e.obs.RecordEvaluation(ctx, len(assets), result.TotalGaps, duration)
	}
	e.logger.Info("population evaluated",
		"assets", len(assets),
		"gaps", result.TotalGaps,
		"high_severity", result.HighSeverityGaps,
		"duration", duration)
	return result, nil
}

// fieldCoverage reports how often each catalog field is populated across
// the population. Fields without an effective source are omitted.
func (e *Evaluator) fieldCoverage(assets []contracts.Asset, cfg *contracts.TenantConfig) []contracts.FieldCoverage {
	var out []contracts.FieldCoverage
	for _, field := range e.catalog.Fields {
		source, resolution := tenantconfig.Resolve(cfg, field)
		if resolution == tenantconfig.ResolvedExcluded || resolution == tenantconfig.ResolvedNone {
			continue
		}
		fc := contracts.FieldCoverage{FieldID: field.ID, Total: len(assets)}
		for i := range assets {
			if EvaluateSource(source, &assets[i]).Value == contracts.TriTrue {
				fc.Populated++
			}
		}
		if fc.Total > 0 {
			fc.CoveragePercent = float64(fc.Populated) / float64(fc.Total) * 100
		}
		out = append(out, fc)
	}
	return out
}

// BindMeasures derives a measure value for each declared measure of a use
// case from population evidence: a measure bound to a signal takes the
// signal's coverage, otherwise the measure id is matched against catalog
// fields and takes that field's coverage fraction. Unresolvable measures
// are UNKNOWN, never silently zero.
func (e *Evaluator) BindMeasures(spec contracts.UseCaseSpec, pop *PopulationResult) map[string]contracts.MeasureValue {
	bySignal := make(map[contracts.SignalID]contracts.SignalBreakdown, len(pop.Breakdowns))
	for _, b := range pop.Breakdowns {
		bySignal[b.Signal] = b
	}
	byField := make(map[string]contracts.FieldCoverage, len(pop.Coverage))
	for _, c := range pop.Coverage {
		byField[c.FieldID] = c
	}

	values := make(map[string]contracts.MeasureValue, len(spec.Measures))
	for _, m := range spec.Measures {
		if m.Signal != "" {
			b, ok := bySignal[m.Signal]
			if !ok || b.True+b.False == 0 {
				values[m.ID] = contracts.UnknownValue()
				continue
			}
			values[m.ID] = contracts.KnownValue(b.Coverage)
			continue
		}
		fieldID, ok := e.bindField(m.ID)
		if !ok {
			values[m.ID] = contracts.UnknownValue()
			continue
		}
		c, ok := byField[fieldID]
		if !ok || c.Total == 0 {
			values[m.ID] = contracts.UnknownValue()
			continue
		}
		values[m.ID] = contracts.KnownValue(float64(c.Populated) / float64(c.Total))
	}
	return values
}

// bindField resolves a measure id to a catalog field: exact id first, then
// a "_coverage" suffix strip, then a normalized substring match.
func (e *Evaluator) bindField(measureID string) (string, bool) {
	if _, ok := e.catalog.Field(measureID); ok {
		return measureID, true
	}
	trimmed := measureID
	if n := len(measureID); n > len("_coverage") && measureID[n-len("_coverage"):] == "_coverage" {
		trimmed = measureID[:n-len("_coverage")]
		if _, ok := e.catalog.Field(trimmed); ok {
			return trimmed, true
		}
	}
	want := fieldcompat.Normalize(trimmed)
	for _, f := range e.catalog.Fields {
		if containsNormalized(fieldcompat.Normalize(f.ID), want) {
			return f.ID, true
		}
	}
	return "", false
}

func containsNormalized(have, want string) bool {
	if want == "" {
		return false
	}
	return have == want || len(want) >= 3 && strings.Contains(have, want)
}

// EvidenceEntries flattens population evidence into measure/asset cells
// for run persistence and delta computation.
func (e *Evaluator) EvidenceEntries(spec contracts.UseCaseSpec, pop *PopulationResult) []contracts.EvidenceEntry {
	var entries []contracts.EvidenceEntry
	for _, m := range spec.Measures {
		var fieldSourceID string
		if m.Signal == "" {
			fieldSourceID, _ = e.bindField(m.ID)
		}
		for _, evidence := range pop.Evidence {
			value := contracts.TriUnknown
			ts := evidence.Metadata.EvaluatedAt
			if m.Signal != "" {
				if s, ok := evidence.Signal(m.Signal); ok {
					value = s.Value
				}
			} else if fieldSourceID != "" {
				for _, exam := range evidence.Metadata.FieldsExamined {
					if exam.FieldID == fieldSourceID {
						value = exam.Value
						break
					}
				}
			}
			entries = append(entries, contracts.EvidenceEntry{
				MeasureID: m.ID,
				AssetID:   evidence.AssetGUID,
				Value:     value,
				Timestamp: ts,
			})
		}
	}
	return entries
}
