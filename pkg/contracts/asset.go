package contracts

// Asset is one raw catalog record as supplied by the external fetch layer.
// Attribute maps are dynamically shaped; evaluators must go through Attr
// rather than indexing the maps directly.
type Asset struct {
	GUID       string         `json:"guid"`
	TypeName   string         `json:"type_name"`
	Name       string         `json:"name,omitempty"`
	Attributes map[string]any `json:"attributes"`
	// BusinessAttributes holds custom metadata, keyed by container then
	// attribute name.
	BusinessAttributes     map[string]map[string]any `json:"business_attributes,omitempty"`
	Classifications        []AssetClassification     `json:"classifications,omitempty"`
	RelationshipAttributes map[string]any            `json:"relationship_attributes,omitempty"`
}

// AssetClassification is one classification applied to an asset.
type AssetClassification struct {
	TypeName    string `json:"type_name"`
	DisplayName string `json:"display_name,omitempty"`
}

// Attr is the typed accessor over the raw attribute map. The second return
// distinguishes an absent key from a present-but-nil value.
func (a *Asset) Attr(name string) (any, bool) {
	if a == nil || a.Attributes == nil {
		return nil, false
	}
	v, ok := a.Attributes[name]
	return v, ok
}

// RelationshipAttr reads from the relationship-attribute map.
func (a *Asset) RelationshipAttr(name string) (any, bool) {
	if a == nil || a.RelationshipAttributes == nil {
		return nil, false
	}
	v, ok := a.RelationshipAttributes[name]
	return v, ok
}

// BusinessAttr reads one attribute from a named custom-metadata container.
// The boolean returns report container presence and attribute presence
// separately so the evaluator can attribute the failure precisely.
func (a *Asset) BusinessAttr(container, name string) (value any, containerOK, attrOK bool) {
	if a == nil || a.BusinessAttributes == nil {
		return nil, false, false
	}
	set, ok := a.BusinessAttributes[container]
	if !ok {
		return nil, false, false
	}
	v, ok := set[name]
	return v, true, ok
}
