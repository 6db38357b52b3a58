package catalog

import (
	"github.com/metalake/readiness/pkg/contracts"
	"github.com/metalake/readiness/pkg/fieldcompat"
)

// DefaultVersion is the built-in catalog version.
const DefaultVersion = "1.0.0"

type fieldSeed struct {
	id          string
	displayName string
	description string
	category    string
	signal      contracts.SignalID
	source      contracts.FieldSource // nil means native via compat tables
}

var defaultFieldSeeds = []fieldSeed{
	// Identity
	{id: "guid", displayName: "GUID", description: "Universal primary key for joins", category: "identity"},
	{id: "name", displayName: "Name", description: "Name of the asset", category: "identity"},
	{id: "asset_type", displayName: "Asset Type", description: "Type of asset (Table, View, Column, etc.)", category: "identity"},
	{id: "qualified_name", displayName: "Qualified Name", description: "Fully qualified name of the asset", category: "identity"},
	{id: "status", displayName: "Status", description: "Asset status (ACTIVE, DELETED, etc.)", category: "identity"},
	{id: "connector_name", displayName: "Connector Name", description: "Name of the data source connector", category: "identity"},

	// Ownership
	{id: "owner_users", displayName: "Owner Users", description: "Individual users accountable for the asset", category: "ownership", signal: contracts.SignalOwnership},
	{id: "owner_groups", displayName: "Owner Groups", description: "Teams or groups accountable for the asset", category: "ownership", signal: contracts.SignalOwnership},
	{id: "admin_users", displayName: "Admin Users", description: "Users with administrative access", category: "ownership", signal: contracts.SignalAccess},
	{id: "admin_groups", displayName: "Admin Groups", description: "Groups with administrative access", category: "ownership", signal: contracts.SignalAccess},

	// Documentation
	{id: "description", displayName: "Description", description: "Short prose description of the asset", category: "documentation", signal: contracts.SignalSemantics},
	{id: "readme", displayName: "README", description: "Linked README documentation", category: "documentation", signal: contracts.SignalSemantics},
	{id: "glossary_terms", displayName: "Glossary Terms", description: "Glossary terms linked to the asset", category: "documentation", signal: contracts.SignalSemantics},

	// Lineage
	{id: "has_lineage", displayName: "Has Lineage", description: "Asset has upstream or downstream lineage", category: "lineage", signal: contracts.SignalLineage},
	{id: "input_to_processes", displayName: "Input To Processes", description: "Processes consuming this asset", category: "lineage", signal: contracts.SignalLineage,
		source: contracts.RelationshipSource{Relation: "inputToProcesses"}},
	{id: "is_primary_key", displayName: "Is Primary Key", description: "Column participates in a primary key", category: "lineage"},
	{id: "is_foreign_key", displayName: "Is Foreign Key", description: "Column participates in a foreign key", category: "lineage"},

	// Governance
	{id: "tags", displayName: "Tags", description: "Tags assigned to the asset", category: "governance"},
	{id: "certificate_status", displayName: "Certificate Status", description: "Certification status of the asset", category: "governance"},
	{id: "certificate_message", displayName: "Certificate Message", description: "Certification status message", category: "governance"},
	{id: "policy_count", displayName: "Policy Count", description: "Access policies attached to the asset", category: "governance", signal: contracts.SignalAccess},
	{id: "pii", displayName: "PII", description: "Asset carries personally identifiable information", category: "governance", signal: contracts.SignalSensitivity,
		source: contracts.ClassificationSource{Pattern: "pii"}},
	{id: "data_sensitivity", displayName: "Data Sensitivity", description: "Sensitivity classification applied to the asset", category: "governance", signal: contracts.SignalSensitivity,
		source: contracts.ClassificationSource{Pattern: "sensitive"}},

	// Quality
	{id: "dq_soda_status", displayName: "Soda DQ Status", description: "Soda data-quality check status", category: "quality"},
	{id: "mc_is_monitored", displayName: "Monte Carlo Monitored", description: "Asset monitored by Monte Carlo", category: "quality"},

	// Usage
	{id: "popularity_score", displayName: "Popularity Score", description: "Usage popularity score", category: "usage", signal: contracts.SignalUsage},
	{id: "query_count", displayName: "Query Count", description: "Queries executed against this asset", category: "usage", signal: contracts.SignalUsage},
	{id: "query_user_count", displayName: "Query User Count", description: "Unique users who queried this asset", category: "usage", signal: contracts.SignalUsage},

	// Hierarchy
	{id: "connection_qualified_name", displayName: "Connection Qualified Name", category: "hierarchy"},
	{id: "database_qualified_name", displayName: "Database Qualified Name", category: "hierarchy"},
	{id: "schema_qualified_name", displayName: "Schema Qualified Name", category: "hierarchy"},
	{id: "domain_guids", displayName: "Domain GUIDs", description: "Data domains the asset belongs to", category: "hierarchy"},

	// Lifecycle
	{id: "created_at", displayName: "Created At", category: "lifecycle"},
	{id: "updated_at", displayName: "Updated At", category: "lifecycle", signal: contracts.SignalFreshness},
	{id: "source_updated_at", displayName: "Source Updated At", description: "Last change observed in the source system", category: "lifecycle", signal: contracts.SignalFreshness},
}

var defaultSignals = []contracts.SignalDefinition{
	{ID: contracts.SignalOwnership, Label: "Ownership", PrimaryFields: []string{"owner_users", "owner_groups"}},
	{ID: contracts.SignalSemantics, Label: "Semantics", PrimaryFields: []string{"description", "glossary_terms", "readme"}},
	{ID: contracts.SignalLineage, Label: "Lineage", PrimaryFields: []string{"has_lineage", "input_to_processes"}},
	{ID: contracts.SignalSensitivity, Label: "Sensitivity", PrimaryFields: []string{"pii", "data_sensitivity"}},
	{ID: contracts.SignalAccess, Label: "Access", PrimaryFields: []string{"admin_users", "admin_groups", "policy_count"}},
	{ID: contracts.SignalUsage, Label: "Usage", PrimaryFields: []string{"popularity_score", "query_count", "query_user_count"}},
	{ID: contracts.SignalFreshness, Label: "Freshness", PrimaryFields: []string{"updated_at", "source_updated_at"}},
}

// Default returns the built-in canonical field catalog.
func Default() *Catalog {
	fields := make([]contracts.CanonicalField, 0, len(defaultFieldSeeds))
	for _, s := range defaultFieldSeeds {
		f := contracts.CanonicalField{
			ID:          s.id,
			DisplayName: s.displayName,
			Description: s.description,
			Category:    s.category,
			Signal:      s.signal,
			Aliases:     fieldcompat.AliasGroup(s.id),
		}
		f.DefaultSource = s.source
		if f.DefaultSource == nil {
			attr, ok := fieldcompat.AttributeOverride(s.id)
			if !ok {
				attr = fieldcompat.CamelCase(s.id)
			}
			f.DefaultSource = contracts.NativeSource{Attribute: attr}
		}
		fields = append(fields, f)
	}
	signals := make([]contracts.SignalDefinition, len(defaultSignals))
	copy(signals, defaultSignals)
	return newCatalog(DefaultVersion, fields, signals)
}
