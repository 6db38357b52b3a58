//go:build property
// +build property

package evaluate_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/metalake/readiness/pkg/catalog"
	"github.com/metalake/readiness/pkg/contracts"
	"github.com/metalake/readiness/pkg/evaluate"
)

// TestNativeAnyPresence verifies the native_any contract: the source is
// true iff at least one listed attribute is present on the asset.
func TestNativeAnyPresence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("true iff any attribute present", prop.ForAll(
		func(attrs []string, values []string) bool {
			if len(attrs) == 0 {
				return true
			}
			asset := &contracts.Asset{Attributes: map[string]any{}}
			anyPresent := false
			for i := 0; i < len(attrs) && i < len(values); i++ {
				if attrs[i] == "" {
					continue
				}
				asset.Attributes[attrs[i]] = values[i]
				if values[i] != "" {
					anyPresent = true
				}
			}
			ev := evaluate.EvaluateSource(contracts.NativeAnySource{Attributes: attrs}, asset)
			if anyPresent {
				return ev.Value == contracts.TriTrue
			}
			if ev.Value != contracts.TriFalse {
				return false
			}
			raw, ok := ev.RawValue.([]any)
			return ok && len(raw) == len(attrs)
		},
		gen.SliceOf(gen.Identifier()),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// TestSignalUnknownIffAllUnknown verifies that a signal is UNKNOWN exactly
// when every primary field evaluated UNKNOWN.
func TestSignalUnknownIffAllUnknown(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	cat := catalog.Default()
	e := evaluate.New(cat)
	def, ok := cat.Signal(contracts.SignalOwnership)
	if !ok {
		t.Fatal("ownership signal missing from default catalog")
	}

	properties.Property("unknown iff every field unknown", prop.ForAll(
		func(deriveFirst, deriveSecond bool) bool {
			cfg := &contracts.TenantConfig{TenantID: "t"}
			sources := []contracts.FieldSource{
				contracts.NativeSource{Attribute: "ownerUsers"},
				contracts.NativeSource{Attribute: "ownerGroups"},
			}
			if deriveFirst {
				sources[0] = contracts.DerivedSource{Derivation: "d"}
			}
			if deriveSecond {
				sources[1] = contracts.DerivedSource{Derivation: "d"}
			}
			for i, id := range def.PrimaryFields {
				cfg.FieldMappings = append(cfg.FieldMappings, contracts.TenantFieldMapping{
					CanonicalFieldID: id, Status: contracts.MappingConfirmed, Source: sources[i],
				})
			}

			var examined []contracts.FieldExamination
			res := e.EvaluateSignal(*def, &contracts.Asset{GUID: "a"}, cfg, &examined)

			allUnknown := deriveFirst && deriveSecond
			return (res.Value == contracts.TriUnknown) == allUnknown
		},
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
