package scoring

import (
	"fmt"
	"strings"

	"github.com/metalake/readiness/pkg/contracts"
)

// Score applies a scoring config to bound measure values and returns the
// readiness result on a 0-100 scale. Dispatch is a single switch on the
// methodology variant; an unhandled variant is an exhaustiveness violation
// and panics.
func Score(cfg contracts.ScoringConfig, measures map[string]contracts.MeasureValue) contracts.ScoreResult {
	switch m := cfg.Methodology.(type) {
	case contracts.WeightedDimensionsMethodology:
		return scoreWeighted(cfg, m.Items, measures, true)
	case contracts.WeightedMeasuresMethodology:
		return scoreWeighted(cfg, m.Items, measures, false)
	case contracts.ChecklistMethodology:
		return scoreChecklist(cfg, m, measures)
	case contracts.TripletMethodology:
		return scoreTriplet(cfg, m, measures)
	case contracts.MaturityMethodology:
		return scoreMaturity(cfg, m, measures)
	default:
		panic(fmt.Sprintf("scoring: unhandled methodology %T", cfg.Methodology))
	}
}

// itemValue resolves the measure value behind a weighted item. Dimension
// items without a directly bound measure take the mean of the measures
// whose id shares the dimension id as a substring.
func itemValue(id string, measures map[string]contracts.MeasureValue, dimensional bool) contracts.MeasureValue {
	if mv, ok := measures[id]; ok {
		return mv
	}
	if !dimensional {
		return contracts.UnknownValue()
	}
	want := strings.ToLower(id)
	sum, n := 0.0, 0
	for mid, mv := range measures {
		if !mv.Known || !strings.Contains(strings.ToLower(mid), want) {
			continue
		}
		sum += mv.Value
		n++
	}
	if n == 0 {
		return contracts.UnknownValue()
	}
	return contracts.KnownValue(sum / float64(n))
}

func scoreWeighted(cfg contracts.ScoringConfig, items []contracts.WeightedItem, measures map[string]contracts.MeasureValue, dimensional bool) contracts.ScoreResult {
	result := contracts.ScoreResult{}
	weightSum, valueSum := 0.0, 0.0
	for _, item := range items {
		mv := itemValue(item.ID, measures, dimensional)
		component := contracts.ComponentScore{ID: item.ID, Weight: item.Weight}
		switch {
		case mv.Known:
			component.Value = mv.Value
			weightSum += item.Weight
			valueSum += item.Weight * mv.Value
		case cfg.UnknownPolicy == contracts.UnknownAsZero:
			component.Unknown = true
			weightSum += item.Weight
		default:
			component.Unknown = true
		}
		result.Components = append(result.Components, component)
	}
	if weightSum > 0 {
		result.Readiness = valueSum / weightSum * 100
	} else if len(items) > 0 {
		// Every item unknown under the ignore policy: nothing to score.
		result.Unknown = true
	}
	result.GatePassed = !result.Unknown && result.Readiness >= cfg.GateThreshold*100
	return result
}

func scoreChecklist(cfg contracts.ScoringConfig, m contracts.ChecklistMethodology, measures map[string]contracts.MeasureValue) contracts.ScoreResult {
	result := contracts.ScoreResult{}
	passed, counted := 0, 0
	requiredFailed := false
	for _, rule := range m.Rules {
		mv := measures[rule.MeasureID]
		component := contracts.ComponentScore{ID: rule.MeasureID}
		switch {
		case !mv.Known:
			component.Unknown = true
			component.Passed = contracts.TriUnknown
			if rule.Required {
				// A required rule with no evidence makes the overall
				// outcome UNKNOWN, never a silent pass.
				result.Unknown = true
			}
			if cfg.UnknownPolicy == contracts.UnknownAsZero {
				counted++
			}
		case mv.Value >= rule.Threshold:
			component.Value = mv.Value
			component.Passed = contracts.TriTrue
			passed++
			counted++
		default:
			component.Value = mv.Value
			component.Passed = contracts.TriFalse
			counted++
			if rule.Required {
				requiredFailed = true
			}
		}
		result.Components = append(result.Components, component)
	}
	if counted > 0 {
		result.Readiness = float64(passed) / float64(counted) * 100
	}
	result.GatePassed = !result.Unknown && !requiredFailed &&
		result.Readiness >= cfg.GateThreshold*100
	return result
}

func scoreTriplet(cfg contracts.ScoringConfig, m contracts.TripletMethodology, measures map[string]contracts.MeasureValue) contracts.ScoreResult {
	result := contracts.ScoreResult{}
	buckets := []struct {
		id  string
		ids []string
	}{
		{"completeness", m.Completeness},
		{"consistency", m.Consistency},
		{"accuracy", m.Accuracy},
	}

	sum, known := 0.0, 0
	for _, bucket := range buckets {
		value, ok := bucketMean(bucket.ids, measures, cfg.UnknownPolicy)
		component := contracts.ComponentScore{ID: bucket.id, Value: value, Unknown: !ok}
		result.Components = append(result.Components, component)
		if ok {
			sum += value
			known++
		}
	}
	if known > 0 {
		result.Readiness = sum / float64(known) * 100
	} else {
		result.Unknown = true
	}
	result.GatePassed = !result.Unknown && result.Readiness >= cfg.GateThreshold*100
	return result
}

// bucketMean averages the known measure values in a bucket. Under the zero
// policy, unknown members count as zero; under the ignore policy they leave
// the denominator. A bucket with no known members is unknown.
func bucketMean(ids []string, measures map[string]contracts.MeasureValue, policy contracts.UnknownPolicy) (float64, bool) {
	sum, n := 0.0, 0
	for _, id := range ids {
		mv := measures[id]
		if mv.Known {
			sum += mv.Value
			n++
		} else if policy == contracts.UnknownAsZero {
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func scoreMaturity(cfg contracts.ScoringConfig, m contracts.MaturityMethodology, measures map[string]contracts.MeasureValue) contracts.ScoreResult {
	result := contracts.ScoreResult{}
	achieved := 0
	blockedByUnknown := false

	for _, level := range m.Levels {
		pass := contracts.TriTrue
		for _, rule := range level.Rules {
			mv := measures[rule.MeasureID]
			switch {
			case !mv.Known:
				if pass != contracts.TriFalse {
					pass = contracts.TriUnknown
				}
			case mv.Value < rule.Threshold:
				pass = contracts.TriFalse
			}
		}
		result.Components = append(result.Components, contracts.ComponentScore{
			ID:     level.Name,
			Passed: pass,
		})
		if pass == contracts.TriTrue && achieved == level.Level-1 {
			achieved = level.Level
		}
		if pass == contracts.TriUnknown && achieved == level.Level-1 {
			// Progression stops on missing evidence, not on a failure.
			blockedByUnknown = true
		}
	}

	result.AchievedLevel = achieved
	if n := len(m.Levels); n > 1 && achieved > 0 {
		result.Readiness = float64(achieved-1) / float64(n-1) * 100
	}
	result.Unknown = blockedByUnknown && cfg.UnknownPolicy != contracts.UnknownAsZero
	result.GatePassed = !result.Unknown && result.Readiness >= cfg.GateThreshold*100
	return result
}
