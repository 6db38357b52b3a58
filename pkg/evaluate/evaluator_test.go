package evaluate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalake/readiness/pkg/catalog"
	"github.com/metalake/readiness/pkg/contracts"
)

var fixedClock = func() time.Time {
	return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
}

// fullyPopulatedAsset lights up every signal in the default catalog.
func fullyPopulatedAsset() *contracts.Asset {
	return &contracts.Asset{
		GUID:     "asset-full",
		TypeName: "Table",
		Name:     "orders",
		Attributes: map[string]any{
			"ownerUsers":              []any{"ana"},
			"description":             "orders fact table",
			"__hasLineage":            true,
			"adminUsers":              []any{"ops"},
			"popularityScore":         8.2,
			"__modificationTimestamp": 1722500000000.0,
		},
		Classifications: []contracts.AssetClassification{
			{TypeName: "PII", DisplayName: "PII"},
		},
	}
}

func TestEvaluateSignalAnyTrueWins(t *testing.T) {
	e := New(catalog.Default()).WithClock(fixedClock)
	def, ok := catalog.Default().Signal(contracts.SignalSemantics)
	require.True(t, ok)

	asset := &contracts.Asset{
		GUID:       "a1",
		Attributes: map[string]any{"description": "", "meanings": []any{"term-1"}},
	}
	var examined []contracts.FieldExamination
	res := e.EvaluateSignal(*def, asset, nil, &examined)

	assert.Equal(t, contracts.TriTrue, res.Value)
	assert.Equal(t, contracts.ReasonNone, res.FailureReason)
	// Every primary field leaves an audit record regardless of outcome.
	assert.Len(t, examined, len(def.PrimaryFields))
}

func TestEvaluateSignalFirstFalseReason(t *testing.T) {
	e := New(catalog.Default()).WithClock(fixedClock)
	def, ok := catalog.Default().Signal(contracts.SignalOwnership)
	require.True(t, ok)

	// ownerUsers is an empty array, ownerGroups is absent: the signal is
	// false and carries the first false field's reason in declaration order.
	asset := &contracts.Asset{
		GUID:       "a1",
		Attributes: map[string]any{"ownerUsers": []any{}, "description": "x"},
	}
	var examined []contracts.FieldExamination
	res := e.EvaluateSignal(*def, asset, nil, &examined)

	assert.Equal(t, contracts.TriFalse, res.Value)
	assert.Equal(t, contracts.ReasonEmptyArray, res.FailureReason)
}

func TestEvaluateSignalUnknownOnlyWhenAllUnknown(t *testing.T) {
	e := New(catalog.Default()).WithClock(fixedClock)
	def, ok := catalog.Default().Signal(contracts.SignalSensitivity)
	require.True(t, ok)

	// Override both sensitivity fields to derived sources so every primary
	// field evaluates UNKNOWN.
	cfg := &contracts.TenantConfig{
		TenantID: "t1",
		FieldMappings: []contracts.TenantFieldMapping{
			{CanonicalFieldID: "pii", Status: contracts.MappingConfirmed,
				Source: contracts.DerivedSource{Derivation: "pii_scan"}},
			{CanonicalFieldID: "data_sensitivity", Status: contracts.MappingConfirmed,
				Source: contracts.DerivedSource{Derivation: "sensitivity_scan"}},
		},
	}
	var examined []contracts.FieldExamination
	res := e.EvaluateSignal(*def, &contracts.Asset{GUID: "a1"}, cfg, &examined)
	assert.Equal(t, contracts.TriUnknown, res.Value)

	// One explicit false flips the signal to false.
	cfg.FieldMappings[1] = contracts.TenantFieldMapping{
		CanonicalFieldID: "data_sensitivity", Status: contracts.MappingConfirmed,
		Source: contracts.NativeSource{Attribute: "sensitivityLabel"},
	}
	examined = nil
	res = e.EvaluateSignal(*def, &contracts.Asset{GUID: "a1"}, cfg, &examined)
	assert.Equal(t, contracts.TriFalse, res.Value)
}

func TestEvaluateSignalExcludedFieldContributesNothing(t *testing.T) {
	e := New(catalog.Default()).WithClock(fixedClock)
	def, ok := catalog.Default().Signal(contracts.SignalOwnership)
	require.True(t, ok)

	cfg := &contracts.TenantConfig{
		TenantID: "t1",
		FieldMappings: []contracts.TenantFieldMapping{
			{CanonicalFieldID: "owner_users", Status: contracts.MappingExcluded},
			{CanonicalFieldID: "owner_groups", Status: contracts.MappingExcluded},
		},
	}
	var examined []contracts.FieldExamination
	res := e.EvaluateSignal(*def, &contracts.Asset{GUID: "a1"}, cfg, &examined)

	assert.Equal(t, contracts.TriUnknown, res.Value)
	assert.Len(t, examined, 2)
}

func TestEvaluateAssetGapCounts(t *testing.T) {
	e := New(catalog.Default()).WithClock(fixedClock)

	// Ownership and lineage false, everything else true: gapCount 2, both
	// gaps high severity.
	asset := fullyPopulatedAsset()
	delete(asset.Attributes, "ownerUsers")
	asset.Attributes["__hasLineage"] = false

	evidence, err := e.EvaluateAsset(asset, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, evidence.GapCount)
	assert.Equal(t, 2, evidence.HighSeverityGaps)

	ownership, ok := evidence.Signal(contracts.SignalOwnership)
	require.True(t, ok)
	assert.Equal(t, contracts.TriFalse, ownership.Value)

	semantics, ok := evidence.Signal(contracts.SignalSemantics)
	require.True(t, ok)
	assert.Equal(t, contracts.TriTrue, semantics.Value)
}

func TestEvaluateAssetEvidenceIsComplete(t *testing.T) {
	e := New(catalog.Default()).WithClock(fixedClock)

	evidence, err := e.EvaluateAsset(fullyPopulatedAsset(), nil)
	require.NoError(t, err)

	assert.Len(t, evidence.Signals, len(contracts.AllSignals()))
	assert.Zero(t, evidence.GapCount)
	assert.NotEmpty(t, evidence.Metadata.EvidenceID)
	assert.Equal(t, fixedClock(), evidence.Metadata.EvaluatedAt)
	assert.NotEmpty(t, evidence.Metadata.FieldsExamined)

	// The content hash covers the record minus the hash field itself.
	recomputed, err := contentHash(evidence)
	require.NoError(t, err)
	assert.Equal(t, recomputed, evidence.Metadata.ContentHash)
}
