// Package reconcile maps the canonical field vocabulary onto a discovered
// tenant schema. For each canonical field it searches native attributes
// (override, then aliases, then the camelCase heuristic), custom metadata,
// and classifications, producing a ranked mapping with a confidence and an
// auto/pending status.
package reconcile

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/metalake/readiness/pkg/catalog"
	"github.com/metalake/readiness/pkg/contracts"
	"github.com/metalake/readiness/pkg/fieldcompat"
)

// Confidence thresholds for the auto status rule.
const (
	autoNativeConfidence = 0.9
	autoCMConfidence     = 0.8
)

// Engine reconciles canonical fields against schema snapshots. Reconciling
// is pure: identical (field, schema) inputs produce identical mappings.
type Engine struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
	clock   func() time.Time
}

// NewEngine creates a reconciliation engine over a catalog.
func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{
		catalog: cat,
		logger:  slog.Default(),
		clock:   time.Now,
	}
}

// WithLogger overrides the engine logger.
func (e *Engine) WithLogger(l *slog.Logger) *Engine {
	e.logger = l
	return e
}

// WithClock overrides the clock for deterministic testing.
func (e *Engine) WithClock(clock func() time.Time) *Engine {
	e.clock = clock
	return e
}

// attrIndex is a case-insensitive view of the discovered native attributes,
// preserving the discovered spelling.
type attrIndex map[string]string

func indexAttributes(names []string) attrIndex {
	idx := make(attrIndex, len(names))
	for _, n := range names {
		idx[strings.ToUpper(n)] = n
	}
	return idx
}

func (idx attrIndex) lookup(name string) (string, bool) {
	actual, ok := idx[strings.ToUpper(name)]
	return actual, ok
}

// ReconcileField maps one canonical field onto the discovered schema.
// Search order: explicit override, alias group, camelCase heuristic, custom
// metadata, classification heuristic. No match yields a NOT_FOUND mapping
// with zero confidence and no source; that is a legitimate
// "needs manual configuration" state, not an error.
func (e *Engine) ReconcileField(field contracts.CanonicalField, schema *contracts.SchemaSnapshot) contracts.TenantFieldMapping {
	idx := indexAttributes(schema.NativeAttributes)

	m := contracts.TenantFieldMapping{
		CanonicalFieldID:   field.ID,
		CanonicalFieldName: field.DisplayName,
		ExpectedAttributes: field.Aliases,
		Reconciliation:     contracts.ReconcileNotFound,
		Status:             contracts.MappingPending,
	}

	// 1. Explicit override.
	if attr, ok := fieldcompat.AttributeOverride(field.ID); ok {
		if actual, hit := idx.lookup(attr); hit {
			m.Source = contracts.NativeSource{Attribute: actual}
			m.Confidence = 1.0
			m.Reconciliation = contracts.ReconcileMatched
			m.MatchedAttribute = actual
			m.Status = deriveStatus(m.Source, m.Confidence)
			return m
		}
	}

	// 2. Alias group.
	if aliases := fieldcompat.AliasGroup(field.ID); len(aliases) > 0 {
		var discovered []string
		for _, a := range aliases {
			if actual, hit := idx.lookup(a); hit {
				discovered = append(discovered, actual)
			}
		}
		switch {
		case len(discovered) == 1:
			m.Source = contracts.NativeSource{Attribute: discovered[0]}
			m.Confidence = 0.98
			m.Reconciliation = contracts.ReconcileAliasMatched
			m.MatchedAttribute = discovered[0]
		case len(discovered) > 1:
			m.Source = contracts.NativeAnySource{Attributes: discovered}
			m.Confidence = 0.95
			m.Reconciliation = contracts.ReconcileAliasMatched
		case len(aliases) == 1:
			// Static, unverified single alias.
			m.Source = contracts.NativeSource{Attribute: aliases[0]}
			m.Confidence = 0.95
			m.Reconciliation = contracts.ReconcileAliasMatched
		default:
			// Static, unverified multi-alias group.
			m.Source = contracts.NativeAnySource{Attributes: aliases}
			m.Confidence = 0.9
			m.Reconciliation = contracts.ReconcileAliasMatched
		}
		m.Status = deriveStatus(m.Source, m.Confidence)
		return m
	}

	// 3. camelCase heuristic.
	candidate := fieldcompat.CamelCase(field.ID)
	if actual, hit := idx.lookup(candidate); hit {
		m.Source = contracts.NativeSource{Attribute: actual}
		m.Confidence = 0.95
		m.Reconciliation = contracts.ReconcileMatched
		m.MatchedAttribute = actual
		m.Status = deriveStatus(m.Source, m.Confidence)
		return m
	}
	if fieldcompat.IsKnownAttribute(candidate) {
		m.Source = contracts.NativeSource{Attribute: candidate}
		m.Confidence = 0.85
		m.Reconciliation = contracts.ReconcileMatched
		m.Status = deriveStatus(m.Source, m.Confidence)
		return m
	}

	// 4. Custom metadata.
	if src, conf, status, ok := matchCustomMetadata(field, schema.CustomMetadata); ok {
		m.Source = src
		m.Confidence = conf
		m.Reconciliation = status
		m.MatchedAttribute = src.Attribute
		m.Status = deriveStatus(m.Source, m.Confidence)
		return m
	}

	// 5. Classification heuristic, allow-listed fields only.
	if src, conf, ok := matchClassification(field, schema.Classifications); ok {
		m.Source = src
		m.Confidence = conf
		m.Reconciliation = contracts.ReconcileClassification
		m.Status = deriveStatus(m.Source, m.Confidence)
		return m
	}

	return m
}

// deriveStatus applies the auto rule: native sources need confidence >= 0.9,
// custom metadata >= 0.8; anything else stays pending for manual review.
func deriveStatus(src contracts.FieldSource, confidence float64) contracts.MappingStatus {
	switch src.(type) {
	case contracts.NativeSource, contracts.NativeAnySource:
		if confidence >= autoNativeConfidence {
			return contracts.MappingAuto
		}
	case contracts.CustomMetadataSource:
		if confidence >= autoCMConfidence {
			return contracts.MappingAuto
		}
	}
	return contracts.MappingPending
}

func matchCustomMetadata(field contracts.CanonicalField, sets []contracts.CustomMetadataSet) (contracts.CustomMetadataSource, float64, contracts.ReconciliationStatus, bool) {
	wantID := fieldcompat.Normalize(field.ID)
	wantName := fieldcompat.Normalize(field.DisplayName)

	// Exact matches first, across all sets, before falling back to partials.
	var partial *contracts.CustomMetadataSource
	for _, set := range sets {
		for _, attr := range set.Attributes {
			gotName := fieldcompat.Normalize(attr.Name)
			gotDisplay := fieldcompat.Normalize(attr.DisplayName)
			if gotName == wantID || gotDisplay == wantID || gotName == wantName || gotDisplay == wantName {
				return contracts.CustomMetadataSource{
					BusinessAttribute: set.Name,
					Attribute:         attr.Name,
				}, 0.9, contracts.ReconcileCMMatched, true
			}
			if partial == nil && (containsEither(gotName, wantID) || containsEither(gotDisplay, wantID)) {
				partial = &contracts.CustomMetadataSource{
					BusinessAttribute: set.Name,
					Attribute:         attr.Name,
				}
			}
		}
	}
	if partial != nil {
		return *partial, 0.6, contracts.ReconcileCMSuggested, true
	}
	return contracts.CustomMetadataSource{}, 0, "", false
}

func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func matchClassification(field contracts.CanonicalField, defs []contracts.ClassificationDef) (contracts.ClassificationSource, float64, bool) {
	keywords, allowed := fieldcompat.ClassificationKeywords(field.ID)
	if !allowed {
		return contracts.ClassificationSource{}, 0, false
	}
	for _, def := range defs {
		display := def.DisplayName
		if display == "" {
			display = def.Name
		}
		normalized := fieldcompat.Normalize(display)
		for _, kw := range keywords {
			if normalized == kw {
				return contracts.ClassificationSource{
					Pattern:     kw,
					Tag:         def.Name,
					DisplayName: def.DisplayName,
				}, 0.75, true
			}
			if strings.Contains(normalized, kw) {
				return contracts.ClassificationSource{
					Pattern:     kw,
					Tag:         def.Name,
					DisplayName: def.DisplayName,
				}, 0.7, true
			}
		}
	}
	return contracts.ClassificationSource{}, 0, false
}

// ReconcileSchema runs every catalog field through the reconciliation
// pipeline.
func (e *Engine) ReconcileSchema(schema *contracts.SchemaSnapshot) []contracts.TenantFieldMapping {
	mappings := make([]contracts.TenantFieldMapping, 0, len(e.catalog.Fields))
	var found int
	for _, field := range e.catalog.Fields {
		m := e.ReconcileField(field, schema)
		if m.Reconciliation != contracts.ReconcileNotFound {
			found++
		}
		mappings = append(mappings, m)
	}
	e.logger.Info("schema reconciled",
		"tenant", schema.TenantID,
		"fields", len(mappings),
		"matched", found)
	return mappings
}

// CreateInitialConfig seeds a version-1 tenant config from a reconciled
// schema snapshot.
func (e *Engine) CreateInitialConfig(tenantID string, schema *contracts.SchemaSnapshot) *contracts.TenantConfig {
	now := e.clock().UTC()
	return &contracts.TenantConfig{
		TenantID:       tenantID,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
		FieldMappings:  e.ReconcileSchema(schema),
		LastSnapshotAt: schema.DiscoveredAt,
	}
}

// FindPrimaryPopulation picks the asset-bearing table from a discovered
// schema: an exact candidate name first, then any table whose name contains
// ASSET.
func FindPrimaryPopulation(schema *contracts.SchemaSnapshot) (string, error) {
	candidates := []string{"ASSETS", "ASSET", "GOLD_ASSETS", "TABLE_ENTITY", "ALL_ASSETS"}
	for _, want := range candidates {
		for _, t := range schema.Tables {
			if strings.EqualFold(t.Name, want) {
				return t.Name, nil
			}
		}
	}
	for _, t := range schema.Tables {
		if strings.Contains(strings.ToUpper(t.Name), "ASSET") {
			return t.Name, nil
		}
	}
	return "", fmt.Errorf("no asset population table found among %d tables", len(schema.Tables))
}
