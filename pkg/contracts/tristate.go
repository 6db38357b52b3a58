// Package contracts defines the shared data model for the readiness core:
// canonical fields, field sources, tenant mappings, assets, evidence,
// methodologies, and evaluation runs. Engines in sibling packages operate
// exclusively on these types.
package contracts

import (
	"encoding/json"
	"fmt"
)

// TriState is a three-valued evidence outcome. Unknown means "no evidence
// either way" and is distinct from False ("evidence of absence").
type TriState int

const (
	TriUnknown TriState = iota
	TriTrue
	TriFalse
)

func (t TriState) String() string {
	switch t {
	case TriTrue:
		return "true"
	case TriFalse:
		return "false"
	default:
		return "UNKNOWN"
	}
}

// Bool reports the boolean value and whether the state is known.
func (t TriState) Bool() (value, known bool) {
	switch t {
	case TriTrue:
		return true, true
	case TriFalse:
		return false, true
	default:
		return false, false
	}
}

// MarshalJSON encodes TriTrue/TriFalse as JSON booleans and TriUnknown as
// the string "UNKNOWN", matching the consumer-facing evidence contract.
func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case TriTrue:
		return []byte("true"), nil
	case TriFalse:
		return []byte("false"), nil
	default:
		return []byte(`"UNKNOWN"`), nil
	}
}

func (t *TriState) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*t = TriTrue
		} else {
			*t = TriFalse
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("tristate: cannot decode %s", string(data))
	}
	if s != "UNKNOWN" {
		return fmt.Errorf("tristate: invalid value %q", s)
	}
	*t = TriUnknown
	return nil
}

// FailureReason explains why a signal or field evaluated to false. It is set
// iff the tri-state value is false, so consumers can explain "why" without
// re-deriving it from raw attributes.
type FailureReason string

const (
	ReasonNone               FailureReason = ""
	ReasonNull               FailureReason = "null"
	ReasonUndefined          FailureReason = "undefined"
	ReasonEmptyString        FailureReason = "empty_string"
	ReasonEmptyArray         FailureReason = "empty_array"
	ReasonEmptyObject        FailureReason = "empty_object"
	ReasonNotMapped          FailureReason = "not_mapped"
	ReasonCMNotFound         FailureReason = "cm_not_found"
	ReasonClassificationNone FailureReason = "classification_none"
	ReasonThresholdNotMet    FailureReason = "threshold_not_met"
	ReasonEvaluationError    FailureReason = "evaluation_error"
	ReasonUnknown            FailureReason = "unknown"
)
