package reconcile

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/metalake/readiness/pkg/contracts"
	"github.com/metalake/readiness/pkg/fieldcompat"
)

// namingCues maps substrings found in tenant metadata names to the
// governance concern they suggest.
var namingCues = []struct {
	cue      string
	category contracts.RecommendationCategory
}{
	{"owner", contracts.RecommendOwnership},
	{"steward", contracts.RecommendOwnership},
	{"pii", contracts.RecommendSensitivity},
	{"sensitive", contracts.RecommendSensitivity},
	{"quality", contracts.RecommendQuality},
	{"dq", contracts.RecommendQuality},
	{"fresh", contracts.RecommendFreshness},
	{"stale", contracts.RecommendFreshness},
	{"sla", contracts.RecommendFreshness},
	{"trust", contracts.RecommendTrust},
	{"certif", contracts.RecommendTrust},
	{"description", contracts.RecommendSemantics},
	{"definition", contracts.RecommendSemantics},
}

var titleCaser = cases.Title(language.English)

// Recommend scans custom-metadata attributes and classifications that no
// existing mapping uses, and proposes additional mappings based on naming
// cues. Proposals are ranked by confidence and never auto-applied.
func (e *Engine) Recommend(schema *contracts.SchemaSnapshot, mappings []contracts.TenantFieldMapping) []contracts.MappingRecommendation {
	usedCM := make(map[string]bool)
	usedClassification := make(map[string]bool)
	for _, m := range mappings {
		switch s := m.Source.(type) {
		case contracts.CustomMetadataSource:
			usedCM[s.BusinessAttribute+"\x00"+s.Attribute] = true
		case contracts.ClassificationSource:
			usedClassification[s.Tag] = true
		}
	}

	var recs []contracts.MappingRecommendation

	for _, set := range schema.CustomMetadata {
		for _, attr := range set.Attributes {
			if usedCM[set.Name+"\x00"+attr.Name] {
				continue
			}
			name := attr.DisplayName
			if name == "" {
				name = attr.Name
			}
			cat, viaName, ok := matchCue(attr.Name, attr.DisplayName)
			if !ok {
				continue
			}
			conf := 0.65
			if !viaName {
				conf = 0.55
			}
			recs = append(recs, contracts.MappingRecommendation{
				DisplayName: displayLabel(name),
				Category:    cat,
				Source: contracts.CustomMetadataSource{
					BusinessAttribute: set.Name,
					Attribute:         attr.Name,
				},
				Rationale:  "unused custom metadata attribute " + set.DisplayName + " / " + name,
				Confidence: conf,
			})
		}
	}

	for _, def := range schema.Classifications {
		if usedClassification[def.Name] {
			continue
		}
		cat, _, ok := matchCue(def.Name, def.DisplayName)
		if !ok {
			continue
		}
		display := def.DisplayName
		if display == "" {
			display = def.Name
		}
		recs = append(recs, contracts.MappingRecommendation{
			DisplayName: displayLabel(display),
			Category:    cat,
			Source: contracts.ClassificationSource{
				Pattern:     fieldcompat.Normalize(display),
				Tag:         def.Name,
				DisplayName: def.DisplayName,
			},
			Rationale:  "unused classification " + display,
			Confidence: 0.6,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
	return recs
}

// matchCue checks a name and display name against the cue table. The
// boolean middle return reports whether the technical name (rather than
// only the display name) carried the cue.
func matchCue(name, displayName string) (contracts.RecommendationCategory, bool, bool) {
	n := strings.ToLower(name)
	d := strings.ToLower(displayName)
	for _, c := range namingCues {
		if strings.Contains(n, c.cue) {
			return c.category, true, true
		}
		if strings.Contains(d, c.cue) {
			return c.category, false, true
		}
	}
	return "", false, false
}

func displayLabel(name string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return titleCaser.String(strings.ToLower(cleaned))
}
