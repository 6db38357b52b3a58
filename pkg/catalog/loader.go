package catalog

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/metalake/readiness/pkg/contracts"
	"github.com/metalake/readiness/pkg/fieldcompat"
)

// compatibleVersions gates loadable catalog files to the major version this
// core understands.
var compatibleVersions = semver.MustParse("1.0.0")

type catalogFile struct {
	Version string       `yaml:"version"`
	Fields  []fieldEntry `yaml:"fields"`
	Signals []signalEntry `yaml:"signals"`
}

type fieldEntry struct {
	ID          string       `yaml:"id"`
	DisplayName string       `yaml:"display_name"`
	Description string       `yaml:"description"`
	Category    string       `yaml:"category"`
	Signal      string       `yaml:"signal"`
	AppliesTo   []string     `yaml:"applies_to"`
	Aliases     []string     `yaml:"aliases"`
	Source      *sourceEntry `yaml:"source"`
}

type sourceEntry struct {
	Type              string   `yaml:"type"`
	Attribute         string   `yaml:"attribute"`
	Attributes        []string `yaml:"attributes"`
	BusinessAttribute string   `yaml:"business_attribute"`
	Pattern           string   `yaml:"pattern"`
	Relation          string   `yaml:"relation"`
	Derivation        string   `yaml:"derivation"`
}

type signalEntry struct {
	ID            string   `yaml:"id"`
	Label         string   `yaml:"label"`
	PrimaryFields []string `yaml:"primary_fields"`
}

// Load reads a catalog YAML file and resolves each field's default source
// through the compatibility tables. The file's version must share the
// supported major version.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes catalog YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if file.Version == "" {
		return nil, fmt.Errorf("parse catalog: missing version")
	}
	v, err := semver.NewVersion(file.Version)
	if err != nil {
		return nil, fmt.Errorf("parse catalog: invalid version %q: %w", file.Version, err)
	}
	if v.Major() != compatibleVersions.Major() {
		return nil, fmt.Errorf("parse catalog: version %s incompatible with %d.x", file.Version, compatibleVersions.Major())
	}
	if len(file.Fields) == 0 {
		return nil, fmt.Errorf("parse catalog: no fields defined")
	}

	fields := make([]contracts.CanonicalField, 0, len(file.Fields))
	for _, fe := range file.Fields {
		if fe.ID == "" {
			return nil, fmt.Errorf("parse catalog: field with empty id")
		}
		f := contracts.CanonicalField{
			ID:          fe.ID,
			DisplayName: fe.DisplayName,
			Description: fe.Description,
			Category:    fe.Category,
			Signal:      contracts.SignalID(fe.Signal),
			AppliesTo:   fe.AppliesTo,
			Aliases:     fe.Aliases,
		}
		if f.DisplayName == "" {
			f.DisplayName = fe.ID
		}
		if len(f.Aliases) == 0 {
			f.Aliases = fieldcompat.AliasGroup(fe.ID)
		}
		src, err := resolveSource(fe)
		if err != nil {
			return nil, err
		}
		f.DefaultSource = src
		fields = append(fields, f)
	}

	signals := make([]contracts.SignalDefinition, 0, len(file.Signals))
	for _, se := range file.Signals {
		signals = append(signals, contracts.SignalDefinition{
			ID:            contracts.SignalID(se.ID),
			Label:         se.Label,
			PrimaryFields: se.PrimaryFields,
		})
	}

	return newCatalog(file.Version, fields, signals), nil
}

func resolveSource(fe fieldEntry) (contracts.FieldSource, error) {
	if fe.Source == nil {
		attr, ok := fieldcompat.AttributeOverride(fe.ID)
		if !ok {
			attr = fieldcompat.CamelCase(fe.ID)
		}
		return contracts.NativeSource{Attribute: attr}, nil
	}
	switch contracts.SourceType(fe.Source.Type) {
	case contracts.SourceNative:
		return contracts.NativeSource{Attribute: fe.Source.Attribute}, nil
	case contracts.SourceNativeAny:
		return contracts.NativeAnySource{Attributes: fe.Source.Attributes}, nil
	case contracts.SourceCustomMetadata:
		return contracts.CustomMetadataSource{
			BusinessAttribute: fe.Source.BusinessAttribute,
			Attribute:         fe.Source.Attribute,
		}, nil
	case contracts.SourceClassification:
		return contracts.ClassificationSource{Pattern: fe.Source.Pattern}, nil
	case contracts.SourceRelationship:
		return contracts.RelationshipSource{Relation: fe.Source.Relation}, nil
	case contracts.SourceDerived:
		return contracts.DerivedSource{Derivation: fe.Source.Derivation}, nil
	default:
		return nil, fmt.Errorf("parse catalog: field %q has unknown source type %q (valid: %v)",
			fe.ID, fe.Source.Type, contracts.ValidSourceTypes())
	}
}
