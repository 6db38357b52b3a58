package contracts

// SignalID names one of the seven composite governance dimensions computed
// from canonical fields.
type SignalID string

const (
	SignalOwnership   SignalID = "ownership"
	SignalSemantics   SignalID = "semantics"
	SignalLineage     SignalID = "lineage"
	SignalSensitivity SignalID = "sensitivity"
	SignalAccess      SignalID = "access"
	SignalUsage       SignalID = "usage"
	SignalFreshness   SignalID = "freshness"
)

// AllSignals returns the seven signals in canonical order.
func AllSignals() []SignalID {
	return []SignalID{
		SignalOwnership, SignalSemantics, SignalLineage,
		SignalSensitivity, SignalAccess, SignalUsage, SignalFreshness,
	}
}

// HighSeveritySignal reports whether a false value on the signal counts as a
// high-severity gap.
func HighSeveritySignal(s SignalID) bool {
	return s == SignalOwnership || s == SignalSemantics || s == SignalLineage
}

// CanonicalField is a vendor-neutral identifier for a governance attribute,
// independent of any tenant's actual schema. The catalog is static: loaded
// once, never mutated.
type CanonicalField struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Signal      SignalID `json:"signal,omitempty"`
	// AppliesTo restricts the field to certain asset type names. Empty means
	// the field applies to every asset type.
	AppliesTo []string `json:"applies_to,omitempty"`
	// Aliases are warehouse column spellings accepted for this field.
	Aliases []string `json:"aliases,omitempty"`
	// DefaultSource is the system-default source used when the tenant has no
	// effective mapping for the field.
	DefaultSource FieldSource `json:"-"`
}

// SignalDefinition binds a signal to the ordered canonical fields whose
// evaluations compose it.
type SignalDefinition struct {
	ID            SignalID `json:"id"`
	Label         string   `json:"label"`
	PrimaryFields []string `json:"primary_fields"`
}
