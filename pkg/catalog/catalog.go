// Package catalog provides the canonical field vocabulary: field
// definitions, asset-type applicability, and the signal groupings the
// evaluator composes. A built-in default catalog mirrors the reference
// vendor vocabulary; tenants may load a customized catalog from YAML.
package catalog

import (
	"github.com/metalake/readiness/pkg/contracts"
)

// Catalog is a loaded canonical field vocabulary. It is static: loaded once
// and never mutated afterwards.
type Catalog struct {
	Version string
	Fields  []contracts.CanonicalField
	Signals []contracts.SignalDefinition

	byID     map[string]int
	bySignal map[contracts.SignalID]int
}

func newCatalog(version string, fields []contracts.CanonicalField, signals []contracts.SignalDefinition) *Catalog {
	c := &Catalog{
		Version:  version,
		Fields:   fields,
		Signals:  signals,
		byID:     make(map[string]int, len(fields)),
		bySignal: make(map[contracts.SignalID]int, len(signals)),
	}
	for i := range fields {
		c.byID[fields[i].ID] = i
	}
	for i := range signals {
		c.bySignal[signals[i].ID] = i
	}
	return c
}

// Field looks up a canonical field by id.
func (c *Catalog) Field(id string) (*contracts.CanonicalField, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.Fields[i], true
}

// Signal looks up a signal definition by id.
func (c *Catalog) Signal(id contracts.SignalID) (*contracts.SignalDefinition, bool) {
	i, ok := c.bySignal[id]
	if !ok {
		return nil, false
	}
	return &c.Signals[i], true
}

// FieldsFor returns the canonical fields applicable to an asset type. A
// field with an empty AppliesTo list applies to every type.
func (c *Catalog) FieldsFor(typeName string) []contracts.CanonicalField {
	out := make([]contracts.CanonicalField, 0, len(c.Fields))
	for _, f := range c.Fields {
		if len(f.AppliesTo) == 0 {
			out = append(out, f)
			continue
		}
		for _, t := range f.AppliesTo {
			if t == typeName {
				out = append(out, f)
				break
			}
		}
	}
	return out
}
