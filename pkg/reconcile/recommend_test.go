package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalake/readiness/pkg/catalog"
	"github.com/metalake/readiness/pkg/contracts"
)

func TestRecommendFromUnusedCustomMetadata(t *testing.T) {
	e := NewEngine(catalog.Default()).WithClock(reconcileClock)
	schema := &contracts.SchemaSnapshot{
		CustomMetadata: []contracts.CustomMetadataSet{{
			Name:        "Governance",
			DisplayName: "Governance",
			Attributes: []contracts.CustomMetadataAttribute{
				{Name: "data_steward", DisplayName: "Data Steward"},
				{Name: "row_count", DisplayName: "Row Count"},
			},
		}},
	}

	recs := e.Recommend(schema, nil)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, contracts.RecommendOwnership, rec.Category)
	assert.Equal(t, "Data Steward", rec.DisplayName)
	assert.InDelta(t, 0.65, rec.Confidence, 1e-9)
	src, ok := rec.Source.(contracts.CustomMetadataSource)
	require.True(t, ok)
	assert.Equal(t, "data_steward", src.Attribute)
}

func TestRecommendSkipsUsedSources(t *testing.T) {
	e := NewEngine(catalog.Default()).WithClock(reconcileClock)
	schema := &contracts.SchemaSnapshot{
		CustomMetadata: []contracts.CustomMetadataSet{{
			Name: "Governance",
			Attributes: []contracts.CustomMetadataAttribute{
				{Name: "data_steward", DisplayName: "Data Steward"},
			},
		}},
	}
	mappings := []contracts.TenantFieldMapping{{
		CanonicalFieldID: "owner_users",
		Source: contracts.CustomMetadataSource{
			BusinessAttribute: "Governance",
			Attribute:         "data_steward",
		},
	}}

	assert.Empty(t, e.Recommend(schema, mappings))
}

func TestRecommendFromClassificationsRankedByConfidence(t *testing.T) {
	e := NewEngine(catalog.Default()).WithClock(reconcileClock)
	schema := &contracts.SchemaSnapshot{
		CustomMetadata: []contracts.CustomMetadataSet{{
			Name: "DQ",
			Attributes: []contracts.CustomMetadataAttribute{
				{Name: "dq_score", DisplayName: "Quality Score"},
			},
		}},
		Classifications: []contracts.ClassificationDef{
			{Name: "cls_pii", DisplayName: "PII Data"},
			{Name: "cls_misc", DisplayName: "Miscellaneous"},
		},
	}

	recs := e.Recommend(schema, nil)
	require.Len(t, recs, 2)

	// Name-cued custom metadata outranks classification proposals.
	assert.InDelta(t, 0.65, recs[0].Confidence, 1e-9)
	assert.Equal(t, contracts.RecommendQuality, recs[0].Category)
	assert.InDelta(t, 0.6, recs[1].Confidence, 1e-9)
	assert.Equal(t, contracts.RecommendSensitivity, recs[1].Category)
}
