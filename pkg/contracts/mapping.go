package contracts

import (
	"encoding/json"
	"time"
)

// MappingStatus is the lifecycle state of a tenant field mapping. Auto and
// pending are assigned by reconciliation; the remaining states only ever
// result from explicit user action.
type MappingStatus string

const (
	MappingAuto       MappingStatus = "auto"
	MappingPending    MappingStatus = "pending"
	MappingConfirmed  MappingStatus = "confirmed"
	MappingRejected   MappingStatus = "rejected"
	MappingOverridden MappingStatus = "overridden"
	MappingExcluded   MappingStatus = "excluded"
)

// ReconciliationStatus records how (or whether) reconciliation matched a
// canonical field against the discovered schema.
type ReconciliationStatus string

const (
	ReconcileMatched        ReconciliationStatus = "MATCHED"
	ReconcileAliasMatched   ReconciliationStatus = "ALIAS_MATCHED"
	ReconcileCMMatched      ReconciliationStatus = "CM_MATCHED"
	ReconcileCMSuggested    ReconciliationStatus = "CM_SUGGESTED"
	ReconcileClassification ReconciliationStatus = "CLASSIFICATION"
	ReconcileNotFound       ReconciliationStatus = "NOT_FOUND"
)

// TenantFieldMapping binds one canonical field to a concrete source in one
// tenant's schema, with the confidence and status reconciliation assigned.
type TenantFieldMapping struct {
	CanonicalFieldID   string               `json:"canonical_field_id"`
	CanonicalFieldName string               `json:"canonical_field_name"`
	Source             FieldSource          `json:"source,omitempty"`
	Status             MappingStatus        `json:"status"`
	Reconciliation     ReconciliationStatus `json:"reconciliation"`
	Confidence         float64              `json:"confidence"`
	ExpectedAttributes []string             `json:"expected_attributes,omitempty"`
	MatchedAttribute   string               `json:"matched_attribute,omitempty"`
	UpdatedAt          time.Time            `json:"updated_at,omitempty"`
}

// MarshalJSON encodes Source through the tagged field-source envelope.
func (m TenantFieldMapping) MarshalJSON() ([]byte, error) {
	type alias TenantFieldMapping
	var src json.RawMessage
	if m.Source != nil {
		b, err := MarshalFieldSource(m.Source)
		if err != nil {
			return nil, err
		}
		src = b
	}
	return json.Marshal(struct {
		alias
		Source json.RawMessage `json:"source,omitempty"`
	}{alias(m), src})
}

func (m *TenantFieldMapping) UnmarshalJSON(data []byte) error {
	type alias TenantFieldMapping
	var aux struct {
		alias
		Source json.RawMessage `json:"source"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = TenantFieldMapping(aux.alias)
	if len(aux.Source) > 0 && string(aux.Source) != "null" {
		src, err := UnmarshalFieldSource(aux.Source)
		if err != nil {
			return err
		}
		m.Source = src
	}
	return nil
}

// RecommendationCategory groups a proposed mapping by the governance
// concern its naming suggests.
type RecommendationCategory string

const (
	RecommendOwnership   RecommendationCategory = "OWNERSHIP"
	RecommendSensitivity RecommendationCategory = "SENSITIVITY"
	RecommendQuality     RecommendationCategory = "QUALITY"
	RecommendFreshness   RecommendationCategory = "FRESHNESS"
	RecommendTrust       RecommendationCategory = "TRUST"
	RecommendSemantics   RecommendationCategory = "SEMANTICS"
)

// MappingRecommendation is a proposed additional mapping discovered from
// unused custom metadata or classifications. Recommendations are never
// auto-applied.
type MappingRecommendation struct {
	DisplayName string                 `json:"display_name"`
	Category    RecommendationCategory `json:"category"`
	Source      FieldSource            `json:"-"`
	Rationale   string                 `json:"rationale"`
	Confidence  float64                `json:"confidence"`
}

// TenantConfig is the curated set of field mappings for one tenant. It is
// versioned and mutated only by explicit user actions.
type TenantConfig struct {
	TenantID       string               `json:"tenant_id"`
	Version        int                  `json:"version"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
	FieldMappings  []TenantFieldMapping `json:"field_mappings"`
	ExcludedFields []string             `json:"excluded_fields,omitempty"`
	LastSnapshotAt time.Time            `json:"last_snapshot_at,omitempty"`
}

// Mapping returns the tenant's mapping for a canonical field, if any.
func (c *TenantConfig) Mapping(fieldID string) (*TenantFieldMapping, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.FieldMappings {
		if c.FieldMappings[i].CanonicalFieldID == fieldID {
			return &c.FieldMappings[i], true
		}
	}
	return nil, false
}
