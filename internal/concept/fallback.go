package concept

import (
	"strings"

	"github.com/kkennyy/call-what-ah/internal/model"
)

const fallbackCanonicalTerms = 3

// Fallback builds a low-confidence concept from baseline terms for ids the
// dialect dataset does not know.
func Fallback(conceptID string, baseline []string) *model.Concept {
	canonical := dedupe(baseline)
	if len(canonical) > fallbackCanonicalTerms {
		canonical = canonical[:fallbackCanonicalTerms]
	}

	variant := model.DialectVariant{
		Alternatives: []string{},
		Confidence:   model.ConfidenceLow,
		Sources:      []model.Source{},
	}
	if len(canonical) > 0 {
		variant.Preferred = canonical[0]
		variant.Alternatives = append(variant.Alternatives, canonical[1:]...)
	}

	return &model.Concept{
		Gloss:     strings.ReplaceAll(conceptID, "_", " "),
		Requires:  []string{},
		Canonical: canonical,
		Variants: map[string]model.DialectVariant{
			model.DialectStandard: variant,
		},
	}
}

// Get returns the dataset concept for id, or a fallback built from baseline
func Get(data *model.DialectData, conceptID string, baseline []string) (*model.Concept, bool) {
	if c := data.Concept(conceptID); c != nil {
		return c, true
	}
	return Fallback(conceptID, baseline), false
}
