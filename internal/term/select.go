// Package term picks the term to recommend for a concept in a dialect.
package term

import (
	"github.com/kkennyy/call-what-ah/internal/model"
)

// Input is everything a selection depends on
type Input struct {
	ConceptID          string
	DialectID          string
	Data               *model.DialectData
	Baseline           []string
	Overrides          model.Overrides
	RequiresResolution bool
}

// Select chooses a recommended term with its provenance and confidence.
// Nothing is recommended while RequiresResolution is set. A dialect pick
// that neither appears in the baseline nor cites a source is demoted to
// the standard term at low confidence.
func Select(in Input) model.Selection {
	concept := in.Data.Concept(in.ConceptID)
	standard, hasStandard := concept.Variant(model.DialectStandard)
	variant, hasVariant := concept.Variant(in.DialectID)

	standardPreferred := standard.Preferred
	if standardPreferred == "" && concept != nil && len(concept.Canonical) > 0 {
		standardPreferred = concept.Canonical[0]
	}
	if standardPreferred == "" && len(in.Baseline) > 0 {
		standardPreferred = in.Baseline[0]
	}

	confidence := model.ConfidenceLow
	switch {
	case hasVariant && variant.Confidence != "":
		confidence = variant.Confidence
	case hasStandard && standard.Confidence != "":
		confidence = standard.Confidence
	}

	sel := model.Selection{
		Confidence:         confidence,
		Provenance:         model.ProvenanceFallbackMandarin,
		RequiresResolution: in.RequiresResolution,
		StandardPreferred:  standardPreferred,
		Concept:            concept,
	}

	override, hasOverride := in.Overrides[in.ConceptID]
	if !in.RequiresResolution {
		switch {
		case in.DialectID == model.DialectCustom && hasOverride && override.Term != "":
			sel.Recommended = override.Term
			sel.Confidence = model.ConfidenceHigh
			sel.Provenance = model.ProvenanceCustomOverride
			sel.CustomSourceDialectID = override.SourceDialectID
		case variant.Preferred != "":
			sel.Recommended = variant.Preferred
			sel.Provenance = model.ProvenanceDialectVariant
		default:
			sel.Recommended = standardPreferred
		}
	}

	if sel.Provenance == model.ProvenanceDialectVariant &&
		!contains(in.Baseline, sel.Recommended) &&
		len(variant.Sources) == 0 {
		sel.Recommended = standardPreferred
		sel.Provenance = model.ProvenanceFallbackMandarin
		sel.Confidence = model.ConfidenceLow
	}

	var pool []string
	pool = append(pool, variant.Alternatives...)
	pool = append(pool, standard.Alternatives...)
	if concept != nil {
		pool = append(pool, concept.Canonical...)
	}
	pool = append(pool, in.Baseline...)
	pool = append(pool, standardPreferred)

	sel.Alternatives = without(dedupe(pool), sel.Recommended)
	if standardPreferred != "" && standardPreferred != sel.Recommended && !contains(sel.Alternatives, standardPreferred) {
		sel.Alternatives = append([]string{standardPreferred}, sel.Alternatives...)
	}
	return sel
}

// Acceptable lists every term the user may reasonably say besides the
// recommendation: alternatives, then baseline terms.
func Acceptable(sel model.Selection, baseline []string) []string {
	pool := append(append(append([]string{}, sel.Alternatives...), sel.Recommended), baseline...)
	return without(dedupe(pool), sel.Recommended)
}

func dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func without(list []string, term string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != term {
			out = append(out, s)
		}
	}
	return out
}

func contains(list []string, term string) bool {
	for _, s := range list {
		if s == term {
			return true
		}
	}
	return false
}
