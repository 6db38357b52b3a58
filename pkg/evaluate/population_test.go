package evaluate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalake/readiness/pkg/catalog"
	"github.com/metalake/readiness/pkg/contracts"
)

func testUseCase() contracts.UseCaseSpec {
	return contracts.UseCaseSpec{
		CapabilityID: "ai-readiness",
		Name:         "AI Readiness",
		Measures: []contracts.MeasureSpec{
			{ID: "owner_coverage"},
			{ID: "description_coverage"},
			{ID: "lineage", Signal: contracts.SignalLineage},
		},
	}
}

func TestEvaluatePopulationAggregates(t *testing.T) {
	e := New(catalog.Default()).WithClock(fixedClock)

	full := fullyPopulatedAsset()
	gapped := fullyPopulatedAsset()
	gapped.GUID = "asset-gapped"
	delete(gapped.Attributes, "ownerUsers")
	delete(gapped.Attributes, "description")

	result, err := e.EvaluatePopulation(context.Background(), []contracts.Asset{*full, *gapped}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalAssets)
	assert.Len(t, result.Evidence, 2)
	assert.Equal(t, 2, result.TotalGaps)
	assert.Equal(t, 2, result.HighSeverityGaps)
	assert.Equal(t, 1, result.GapsBySignal[contracts.SignalOwnership])
	assert.Equal(t, 1, result.GapsBySignal[contracts.SignalSemantics])

	var ownership contracts.SignalBreakdown
	for _, b := range result.Breakdowns {
		if b.Signal == contracts.SignalOwnership {
			ownership = b
		}
	}
	assert.Equal(t, 1, ownership.True)
	assert.Equal(t, 1, ownership.False)
	assert.InDelta(t, 0.5, ownership.Coverage, 1e-9)
}

func TestEvaluatePopulationHonorsCancellation(t *testing.T) {
	e := New(catalog.Default()).WithClock(fixedClock)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.EvaluatePopulation(ctx, []contracts.Asset{*fullyPopulatedAsset()}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFieldCoverageReport(t *testing.T) {
	e := New(catalog.Default()).WithClock(fixedClock)

	full := fullyPopulatedAsset()
	bare := &contracts.Asset{GUID: "asset-bare", TypeName: "Table"}

	result, err := e.EvaluatePopulation(context.Background(), []contracts.Asset{*full, *bare}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, result.Coverage)

	byField := make(map[string]contracts.FieldCoverage)
	for _, c := range result.Coverage {
		byField[c.FieldID] = c
	}

	owner := byField["owner_users"]
	assert.Equal(t, 2, owner.Total)
	assert.Equal(t, 1, owner.Populated)
	assert.InDelta(t, 50.0, owner.CoveragePercent, 1e-9)
}

func TestBindMeasures(t *testing.T) {
	e := New(catalog.Default()).WithClock(fixedClock)

	full := fullyPopulatedAsset()
	bare := &contracts.Asset{GUID: "asset-bare", TypeName: "Table"}
	result, err := e.EvaluatePopulation(context.Background(), []contracts.Asset{*full, *bare}, nil)
	require.NoError(t, err)

	measures := e.BindMeasures(testUseCase(), result)

	owner := measures["owner_coverage"]
	require.True(t, owner.Known)
	assert.InDelta(t, 0.5, owner.Value, 1e-9)

	desc := measures["description_coverage"]
	require.True(t, desc.Known)
	assert.InDelta(t, 0.5, desc.Value, 1e-9)

	// Signal-bound measure takes the signal's true/(true+false) coverage.
	lineage := measures["lineage"]
	require.True(t, lineage.Known)
	assert.InDelta(t, 0.5, lineage.Value, 1e-9)
}

func TestBindMeasuresUnresolvableIsUnknown(t *testing.T) {
	e := New(catalog.Default()).WithClock(fixedClock)
	result, err := e.EvaluatePopulation(context.Background(), []contracts.Asset{*fullyPopulatedAsset()}, nil)
	require.NoError(t, err)

	spec := contracts.UseCaseSpec{
		CapabilityID: "x",
		Measures:     []contracts.MeasureSpec{{ID: "zz"}},
	}
	measures := e.BindMeasures(spec, result)
	assert.False(t, measures["zz"].Known)
}

func TestEvidenceEntries(t *testing.T) {
	e := New(catalog.Default()).WithClock(fixedClock)

	full := fullyPopulatedAsset()
	bare := &contracts.Asset{GUID: "asset-bare", TypeName: "Table"}
	result, err := e.EvaluatePopulation(context.Background(), []contracts.Asset{*full, *bare}, nil)
	require.NoError(t, err)

	entries := e.EvidenceEntries(testUseCase(), result)
	// One cell per measure per asset.
	assert.Len(t, entries, 3*2)

	byKey := make(map[string]contracts.EvidenceEntry)
	for _, entry := range entries {
		byKey[entry.Key()] = entry
	}
	assert.Equal(t, contracts.TriTrue, byKey["owner_coverage:asset-full"].Value)
	assert.Equal(t, contracts.TriFalse, byKey["owner_coverage:asset-bare"].Value)
	assert.Equal(t, contracts.TriTrue, byKey["lineage:asset-full"].Value)
	assert.Equal(t, fixedClock(), byKey["lineage:asset-full"].Timestamp)
}
