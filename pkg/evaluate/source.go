package evaluate

import (
	"strings"

	"github.com/metalake/readiness/pkg/contracts"
)

// EvaluateSource evaluates one field source against one asset. Any panic
// during evaluation is converted to an UNKNOWN outcome with
// failureReason=evaluation_error; evaluation never throws past this
// boundary, so one malformed asset cannot abort a population run.
func EvaluateSource(source contracts.FieldSource, asset *contracts.Asset) (ev contracts.SourceEvaluation) {
	defer func() {
		if r := recover(); r != nil {
			ev = contracts.SourceEvaluation{
				Value:         contracts.TriUnknown,
				FailureReason: contracts.ReasonEvaluationError,
			}
		}
	}()

	switch s := source.(type) {
	case contracts.NativeSource:
		return evalNative(s, asset)
	case contracts.NativeAnySource:
		return evalNativeAny(s, asset)
	case contracts.CustomMetadataSource:
		return evalCustomMetadata(s, asset)
	case contracts.ClassificationSource:
		return evalClassification(s, asset)
	case contracts.RelationshipSource:
		return evalRelationship(s, asset)
	case contracts.DerivedSource:
		// Derived evaluation is explicitly unimplemented: UNKNOWN, never a
		// silent false.
		return contracts.SourceEvaluation{Value: contracts.TriUnknown}
	default:
		return contracts.SourceEvaluation{
			Value:         contracts.TriFalse,
			FailureReason: contracts.ReasonNotMapped,
		}
	}
}

func evalNative(s contracts.NativeSource, asset *contracts.Asset) contracts.SourceEvaluation {
	v, ok := asset.Attr(s.Attribute)
	if ok && present(v) {
		return contracts.SourceEvaluation{Value: contracts.TriTrue, RawValue: v}
	}
	return contracts.SourceEvaluation{
		Value:         contracts.TriFalse,
		RawValue:      v,
		FailureReason: absenceReason(v, ok),
	}
}

func evalNativeAny(s contracts.NativeAnySource, asset *contracts.Asset) contracts.SourceEvaluation {
	raw := make([]any, len(s.Attributes))
	for i, attr := range s.Attributes {
		v, ok := asset.Attr(attr)
		raw[i] = v
		if ok && present(v) {
			return contracts.SourceEvaluation{Value: contracts.TriTrue, RawValue: v}
		}
	}
	// False case carries the full array of (possibly absent) values.
	return contracts.SourceEvaluation{
		Value:         contracts.TriFalse,
		RawValue:      raw,
		FailureReason: contracts.ReasonEmptyArray,
	}
}

func evalCustomMetadata(s contracts.CustomMetadataSource, asset *contracts.Asset) contracts.SourceEvaluation {
	v, containerOK, attrOK := asset.BusinessAttr(s.BusinessAttribute, s.Attribute)
	if !containerOK || !attrOK {
		return contracts.SourceEvaluation{
			Value:         contracts.TriFalse,
			FailureReason: contracts.ReasonCMNotFound,
		}
	}
	if present(v) {
		return contracts.SourceEvaluation{Value: contracts.TriTrue, RawValue: v}
	}
	return contracts.SourceEvaluation{
		Value:         contracts.TriFalse,
		RawValue:      v,
		FailureReason: absenceReason(v, true),
	}
}

func evalClassification(s contracts.ClassificationSource, asset *contracts.Asset) contracts.SourceEvaluation {
	pattern := strings.ToLower(s.Pattern)
	for _, c := range asset.Classifications {
		if strings.Contains(strings.ToLower(c.TypeName), pattern) ||
			strings.Contains(strings.ToLower(c.DisplayName), pattern) {
			return contracts.SourceEvaluation{Value: contracts.TriTrue, RawValue: c.TypeName}
		}
	}
	return contracts.SourceEvaluation{
		Value:         contracts.TriFalse,
		FailureReason: contracts.ReasonClassificationNone,
	}
}

func evalRelationship(s contracts.RelationshipSource, asset *contracts.Asset) contracts.SourceEvaluation {
	if v, ok := asset.RelationshipAttr(s.Relation); ok {
		if present(v) {
			return contracts.SourceEvaluation{Value: contracts.TriTrue, RawValue: v}
		}
		return contracts.SourceEvaluation{
			Value:         contracts.TriFalse,
			RawValue:      v,
			FailureReason: absenceReason(v, true),
		}
	}
	if v, ok := asset.Attr(s.Relation + "Count"); ok {
		if n, isNum := asNumber(v); isNum {
			if n > 0 {
				return contracts.SourceEvaluation{Value: contracts.TriTrue, RawValue: v}
			}
			return contracts.SourceEvaluation{
				Value:         contracts.TriFalse,
				RawValue:      v,
				FailureReason: contracts.ReasonEmptyArray,
			}
		}
	}
	if v, ok := asset.Attr(hasFlag(s.Relation)); ok {
		if b, isBool := v.(bool); isBool {
			if b {
				return contracts.SourceEvaluation{Value: contracts.TriTrue, RawValue: v}
			}
			return contracts.SourceEvaluation{
				Value:         contracts.TriFalse,
				RawValue:      v,
				FailureReason: contracts.ReasonEmptyArray,
			}
		}
	}
	// No evidence in any probe: no value inferred.
	return contracts.SourceEvaluation{Value: contracts.TriUnknown}
}

// hasFlag builds the "__has<Relation>" presence-flag attribute name.
func hasFlag(relation string) string {
	if relation == "" {
		return "__has"
	}
	return "__has" + strings.ToUpper(relation[:1]) + relation[1:]
}
