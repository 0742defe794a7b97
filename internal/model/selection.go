package model

// Provenance explains why a term was recommended
type Provenance string

const (
	ProvenanceCustomOverride   Provenance = "custom_override"
	ProvenanceDialectVariant   Provenance = "dialect_variant"
	ProvenanceFallbackMandarin Provenance = "fallback_mandarin"
)

// Selection is the term selector's output. Recommended is empty while
// resolution is blocked on missing facts.
type Selection struct {
	Recommended           string     `json:"recommended,omitempty"`
	Alternatives          []string   `json:"alternatives"`
	Confidence            Confidence `json:"confidence"`
	Provenance            Provenance `json:"provenance"`
	RequiresResolution    bool       `json:"requires_resolution"`
	StandardPreferred     string     `json:"standard_preferred,omitempty"`
	CustomSourceDialectID string     `json:"custom_source_dialect_id,omitempty"`

	Concept *Concept `json:"-"`
}

// HasRecommendation reports whether a single term was chosen
func (s Selection) HasRecommendation() bool {
	return s.Recommended != ""
}

// ConceptResolution is the concept resolver's output
type ConceptResolution struct {
	ConceptID        string   `json:"concept_id"`
	Requires         []string `json:"requires"`
	MissingFacts     []string `json:"missing_facts"`
	Selector         string   `json:"selector"`
	ReverseSelector  string   `json:"reverse_selector,omitempty"`
	ReverseSelectors []string `json:"reverse_selectors,omitempty"`
}

// IsMissing reports whether fact is among the missing facts
func (r ConceptResolution) IsMissing(fact string) bool {
	for _, f := range r.MissingFacts {
		if f == fact {
			return true
		}
	}
	return false
}

// IsRequired reports whether key is among the required facts
func (r ConceptResolution) IsRequired(key string) bool {
	for _, k := range r.Requires {
		if k == key {
			return true
		}
	}
	return false
}

// Resolved reports whether no facts are missing
func (r ConceptResolution) Resolved() bool {
	return len(r.MissingFacts) == 0
}
