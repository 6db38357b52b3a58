// Package evaluate computes per-asset evidence: it evaluates canonical
// field sources against raw asset records under tri-state semantics,
// composes the seven governance signals, and aggregates populations into
// breakdowns, coverage and measures.
package evaluate

import (
	"reflect"

	"github.com/metalake/readiness/pkg/contracts"
)

// present applies the presence predicate to a raw attribute value: strings,
// slices and maps must be non-empty, booleans must be true, numbers and
// other values only non-nil.
func present(v any) bool {
	if v == nil {
		return false
	}
	switch t := v.(type) {
	case string:
		return t != ""
	case bool:
		return t
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil() && present(rv.Elem().Interface())
	}
	return true
}

// absenceReason derives the failure reason from the shape of an absent raw
// value. The exists flag distinguishes a missing key from a present nil.
func absenceReason(v any, exists bool) contracts.FailureReason {
	if !exists {
		return contracts.ReasonUndefined
	}
	if v == nil {
		return contracts.ReasonNull
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return contracts.ReasonEmptyString
		}
	case []any:
		if len(t) == 0 {
			return contracts.ReasonEmptyArray
		}
	case []string:
		if len(t) == 0 {
			return contracts.ReasonEmptyArray
		}
	case map[string]any:
		if len(t) == 0 {
			return contracts.ReasonEmptyObject
		}
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return contracts.ReasonEmptyArray
		}
	case reflect.Map:
		if rv.Len() == 0 {
			return contracts.ReasonEmptyObject
		}
	}
	return contracts.ReasonUnknown
}

// asNumber converts numeric attribute values that may arrive as any JSON
// number shape.
func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint64:
		return float64(t), true
	}
	return 0, false
}
