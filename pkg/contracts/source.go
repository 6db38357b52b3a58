package contracts

import (
	"encoding/json"
	"fmt"
)

// SourceType discriminates the closed set of field-source variants.
type SourceType string

const (
	SourceNative         SourceType = "native"
	SourceNativeAny      SourceType = "native_any"
	SourceCustomMetadata SourceType = "custom_metadata"
	SourceClassification SourceType = "classification"
	SourceRelationship   SourceType = "relationship"
	SourceDerived        SourceType = "derived"
)

// ValidSourceTypes lists every accepted source type, for boundary errors.
func ValidSourceTypes() []SourceType {
	return []SourceType{
		SourceNative, SourceNativeAny, SourceCustomMetadata,
		SourceClassification, SourceRelationship, SourceDerived,
	}
}

// FieldSource is the closed union of ways a canonical field can be satisfied
// by a tenant's schema. Each variant carries only its own payload; the set of
// variants is sealed within this package.
type FieldSource interface {
	SourceType() SourceType
	sealed()
}

// NativeSource reads a single native attribute from the asset record.
type NativeSource struct {
	Attribute string `json:"attribute"`
}

// NativeAnySource is satisfied when any one of several native attributes is
// present.
type NativeAnySource struct {
	Attributes []string `json:"attributes"`
}

// CustomMetadataSource reads an attribute from a named business-attribute
// container on the asset.
type CustomMetadataSource struct {
	BusinessAttribute string `json:"business_attribute"`
	Attribute         string `json:"attribute"`
}

// ClassificationSource is satisfied when a classification on the asset
// matches the pattern (case-insensitive substring).
type ClassificationSource struct {
	Pattern     string `json:"pattern"`
	Tag         string `json:"tag,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// RelationshipSource probes, in order: the named relationship attribute, a
// "<relation>Count" numeric attribute, then a "__has<Relation>" flag.
type RelationshipSource struct {
	Relation string `json:"relation"`
}

// DerivedSource marks a field whose value would be computed from others.
// Evaluation of derived sources is explicitly unimplemented and yields
// UNKNOWN, never a silent false.
type DerivedSource struct {
	Derivation string `json:"derivation"`
}

func (NativeSource) SourceType() SourceType         { return SourceNative }
func (NativeAnySource) SourceType() SourceType      { return SourceNativeAny }
func (CustomMetadataSource) SourceType() SourceType { return SourceCustomMetadata }
func (ClassificationSource) SourceType() SourceType { return SourceClassification }
func (RelationshipSource) SourceType() SourceType   { return SourceRelationship }
func (DerivedSource) SourceType() SourceType        { return SourceDerived }

func (NativeSource) sealed()         {}
func (NativeAnySource) sealed()      {}
func (CustomMetadataSource) sealed() {}
func (ClassificationSource) sealed() {}
func (RelationshipSource) sealed()   {}
func (DerivedSource) sealed()        {}

type sourceEnvelope struct {
	Type              SourceType `json:"type"`
	Attribute         string     `json:"attribute,omitempty"`
	Attributes        []string   `json:"attributes,omitempty"`
	BusinessAttribute string     `json:"business_attribute,omitempty"`
	Pattern           string     `json:"pattern,omitempty"`
	Tag               string     `json:"tag,omitempty"`
	DisplayName       string     `json:"display_name,omitempty"`
	Relation          string     `json:"relation,omitempty"`
	Derivation        string     `json:"derivation,omitempty"`
}

// MarshalFieldSource encodes a source as a tagged JSON envelope
// {"type": "...", ...payload}.
func MarshalFieldSource(s FieldSource) ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	env := sourceEnvelope{Type: s.SourceType()}
	switch v := s.(type) {
	case NativeSource:
		env.Attribute = v.Attribute
	case NativeAnySource:
		env.Attributes = v.Attributes
	case CustomMetadataSource:
		env.BusinessAttribute = v.BusinessAttribute
		env.Attribute = v.Attribute
	case ClassificationSource:
		env.Pattern = v.Pattern
		env.Tag = v.Tag
		env.DisplayName = v.DisplayName
	case RelationshipSource:
		env.Relation = v.Relation
	case DerivedSource:
		env.Derivation = v.Derivation
	}
	return json.Marshal(env)
}

// UnmarshalFieldSource decodes a tagged JSON envelope into the matching
// variant. An unrecognized type yields an error naming the valid set.
func UnmarshalFieldSource(data []byte) (FieldSource, error) {
	var env sourceEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("field source: %w", err)
	}
	switch env.Type {
	case SourceNative:
		return NativeSource{Attribute: env.Attribute}, nil
	case SourceNativeAny:
		return NativeAnySource{Attributes: env.Attributes}, nil
	case SourceCustomMetadata:
		return CustomMetadataSource{BusinessAttribute: env.BusinessAttribute, Attribute: env.Attribute}, nil
	case SourceClassification:
		return ClassificationSource{Pattern: env.Pattern, Tag: env.Tag, DisplayName: env.DisplayName}, nil
	case SourceRelationship:
		return RelationshipSource{Relation: env.Relation}, nil
	case SourceDerived:
		return DerivedSource{Derivation: env.Derivation}, nil
	default:
		return nil, fmt.Errorf("field source: unknown type %q (valid: %v)", env.Type, ValidSourceTypes())
	}
}
