package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalake/readiness/pkg/contracts"
)

const sampleCatalogYAML = `
version: "1.2.0"
fields:
  - id: owner_users
    display_name: Owner Users
    category: ownership
    signal: ownership
  - id: steward_email
    display_name: Steward Email
    category: ownership
    signal: ownership
    source:
      type: custom_metadata
      business_attribute: Governance
      attribute: steward_email
  - id: pii
    category: governance
    signal: sensitivity
    source:
      type: classification
      pattern: pii
signals:
  - id: ownership
    label: Ownership
    primary_fields: [owner_users, steward_email]
  - id: sensitivity
    label: Sensitivity
    primary_fields: [pii]
`

func TestParseCatalogYAML(t *testing.T) {
	c, err := Parse([]byte(sampleCatalogYAML))
	require.NoError(t, err)

	assert.Equal(t, "1.2.0", c.Version)
	require.Len(t, c.Fields, 3)
	require.Len(t, c.Signals, 2)

	// No explicit source resolves through the compatibility tables.
	owner, ok := c.Field("owner_users")
	require.True(t, ok)
	native, ok := owner.DefaultSource.(contracts.NativeSource)
	require.True(t, ok)
	assert.Equal(t, "ownerUsers", native.Attribute)
	assert.NotEmpty(t, owner.Aliases)

	steward, ok := c.Field("steward_email")
	require.True(t, ok)
	cm, ok := steward.DefaultSource.(contracts.CustomMetadataSource)
	require.True(t, ok)
	assert.Equal(t, "Governance", cm.BusinessAttribute)

	// Missing display name falls back to the field id.
	pii, ok := c.Field("pii")
	require.True(t, ok)
	assert.Equal(t, "pii", pii.DisplayName)

	sig, ok := c.Signal(contracts.SignalOwnership)
	require.True(t, ok)
	assert.Equal(t, []string{"owner_users", "steward_email"}, sig.PrimaryFields)
}

func TestParseCatalogRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing version", "fields:\n  - id: x\n"},
		{"invalid version", "version: \"not-semver\"\nfields:\n  - id: x\n"},
		{"incompatible major", "version: \"2.0.0\"\nfields:\n  - id: x\n"},
		{"no fields", "version: \"1.0.0\"\n"},
		{"empty field id", "version: \"1.0.0\"\nfields:\n  - display_name: X\n"},
		{"unknown source type", "version: \"1.0.0\"\nfields:\n  - id: x\n    source:\n      type: telepathy\n"},
		{"not yaml", "{{{"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseCatalogUnknownSourceTypeListsValidTypes(t *testing.T) {
	_, err := Parse([]byte("version: \"1.0.0\"\nfields:\n  - id: x\n    source:\n      type: telepathy\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telepathy")
	assert.Contains(t, err.Error(), string(contracts.SourceNative))
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalogYAML), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", c.Version)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
