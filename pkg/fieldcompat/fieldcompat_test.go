package fieldcompat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamelCase(t *testing.T) {
	cases := map[string]string{
		"owner_users":       "ownerUsers",
		"description":       "description",
		"query_user_count":  "queryUserCount",
		"source_updated_at": "sourceUpdatedAt",
		"trailing_":         "trailing",
		"ALREADY_UPPER":     "alreadyUpper",
	}
	for in, want := range cases {
		assert.Equal(t, want, CamelCase(in), "CamelCase(%q)", in)
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"DATA_OWNER_EMAIL": "dataowneremail",
		"Data Owner-Email": "dataowneremail",
		"ownerUsers":       "ownerusers",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}

func TestAttributeOverride(t *testing.T) {
	attr, ok := AttributeOverride("glossary_terms")
	require.True(t, ok)
	assert.Equal(t, "meanings", attr)

	attr, ok = AttributeOverride("has_lineage")
	require.True(t, ok)
	assert.Equal(t, "__hasLineage", attr)

	_, ok = AttributeOverride("not_a_field")
	assert.False(t, ok)
}

func TestAliasGroup(t *testing.T) {
	aliases := AliasGroup("owner_users")
	assert.Equal(t, []string{"OWNER_USERS", "OWNERUSERS"}, aliases)
	assert.Nil(t, AliasGroup("not_a_field"))
}

func TestIsKnownAttribute(t *testing.T) {
	// Overrides feed the known set, plus a handful of extras.
	assert.True(t, IsKnownAttribute("ownerUsers"))
	assert.True(t, IsKnownAttribute("userDescription"))
	assert.False(t, IsKnownAttribute("madeUpAttribute"))
}

func TestClassificationKeywords(t *testing.T) {
	kws, ok := ClassificationKeywords("pii")
	require.True(t, ok)
	assert.Contains(t, kws, "personal")

	// Allow-list keys match as substrings of the field id.
	kws, ok = ClassificationKeywords("data_sensitivity")
	require.True(t, ok)
	assert.Contains(t, kws, "confidential")

	_, ok = ClassificationKeywords("description")
	assert.False(t, ok)
}
