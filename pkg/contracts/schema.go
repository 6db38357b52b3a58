package contracts

import "time"

// SchemaSnapshot captures what an external discovery crawler found in one
// tenant's catalog: native attribute names, custom metadata definitions,
// classifications, and domains. Reconciliation works only from a snapshot;
// the core never queries the tenant directly.
type SchemaSnapshot struct {
	TenantID         string                 `json:"tenant_id"`
	DiscoveredAt     time.Time              `json:"discovered_at"`
	NativeAttributes []string               `json:"native_attributes"`
	CustomMetadata   []CustomMetadataSet    `json:"custom_metadata,omitempty"`
	Classifications  []ClassificationDef    `json:"classifications,omitempty"`
	Domains          []DomainDef            `json:"domains,omitempty"`
	Tables           []TableInfo            `json:"tables,omitempty"`
	Columns          map[string][]ColumnInfo `json:"columns,omitempty"`
}

// CustomMetadataSet is one business-attribute container with its attributes.
type CustomMetadataSet struct {
	Name        string                    `json:"name"`
	DisplayName string                    `json:"display_name"`
	Attributes  []CustomMetadataAttribute `json:"attributes"`
}

// CustomMetadataAttribute is one attribute inside a custom metadata set.
type CustomMetadataAttribute struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Type        string `json:"type,omitempty"`
}

// ClassificationDef is a discovered classification (tag) definition.
type ClassificationDef struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	UsageCount  int    `json:"usage_count,omitempty"`
}

// DomainDef is a discovered data domain or glossary.
type DomainDef struct {
	GUID          string `json:"guid"`
	Name          string `json:"name"`
	QualifiedName string `json:"qualified_name,omitempty"`
}

// TableInfo describes a discovered warehouse table or view.
type TableInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	RowCount int64  `json:"row_count,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// ColumnInfo describes a discovered column.
type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Nullable bool   `json:"nullable,omitempty"`
	Comment  string `json:"comment,omitempty"`
}
