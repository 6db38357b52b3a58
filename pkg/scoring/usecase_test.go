package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalake/readiness/pkg/contracts"
)

func TestParseUseCaseSpec(t *testing.T) {
	raw := []byte(`{
		"capability_id": "ai-readiness",
		"name": "AI Readiness",
		"dimensions": [{"id": "owner", "label": "Ownership"}],
		"measures": [
			{"id": "owner_coverage"},
			{"id": "lineage", "signal": "lineage"}
		]
	}`)
	spec, err := ParseUseCaseSpec(raw)
	require.NoError(t, err)
	assert.Equal(t, "ai-readiness", spec.CapabilityID)
	require.Len(t, spec.Measures, 2)
	assert.Equal(t, contracts.SignalLineage, spec.Measures[1].Signal)
}

func TestParseUseCaseSpecRejectsMissingCapability(t *testing.T) {
	_, err := ParseUseCaseSpec([]byte(`{"name": "nameless"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestParseUseCaseSpecRejectsBadSignal(t *testing.T) {
	_, err := ParseUseCaseSpec([]byte(`{
		"capability_id": "x",
		"measures": [{"id": "m", "signal": "velocity"}]
	}`))
	require.Error(t, err)
}

func TestParseUseCaseSpecRejectsMalformedJSON(t *testing.T) {
	_, err := ParseUseCaseSpec([]byte(`{`))
	require.Error(t, err)
}
