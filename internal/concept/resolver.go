// Package concept maps selectors to canonical kinship concept ids and works
// out which facts are still needed to disambiguate them.
package concept

import (
	"regexp"
	"strings"

	"github.com/kkennyy/call-what-ah/internal/model"
	"github.com/kkennyy/call-what-ah/internal/selector"
)

// Input is everything a resolution depends on
type Input struct {
	Chain   model.Chain
	Catalog *model.StepCatalog
	Sex     model.Sex
	Reverse bool
	Data    *model.DialectData
	Facts   model.Facts
}

var unsafeIDChars = regexp.MustCompile(`[^a-z0-9_]`)

// GenericID derives a deterministic concept id for a selector the curated
// table does not cover. Reverse ids carry a distinct prefix.
func GenericID(sel string, reverse bool) string {
	tokens := strings.Split(sel, ",")
	for i, t := range tokens {
		tokens[i] = unsafeIDChars.ReplaceAllString(strings.ReplaceAll(t, "&", "_"), "")
	}
	id := "selector_" + strings.Join(tokens, "__")
	if reverse {
		return "reverse_" + id
	}
	return id
}

// ID returns the curated id for sel, falling back to GenericID
func ID(sel string, reverse bool) string {
	if id, ok := Lookup(sel); ok {
		return id
	}
	return GenericID(sel, reverse)
}

// Resolve maps a chain to its concept. It fails only when the chain
// references a step missing from the catalog.
func Resolve(in Input) (model.ConceptResolution, error) {
	base, err := selector.Build(in.Chain, in.Catalog)
	if err != nil {
		return model.ConceptResolution{}, err
	}

	sex := effectiveSex(in.Sex, in.Facts)
	withFacts := selector.WithAgeTie(base, in.Facts.Get(model.FactCousinAgeRelative))

	working := withFacts
	var reverseSelectors []string
	if in.Reverse {
		reverseSelectors = selector.Invert(withFacts, sex)
		working = selector.Canonical(reverseSelectors)
	}
	if working == "" {
		working = withFacts
	}

	sexAmbiguous := in.Reverse && sex == model.SexUnknown && len(reverseSelectors) > 1

	id := ID(working, in.Reverse)

	var declared []string
	if c := in.Data.Concept(id); c != nil {
		declared = c.Requires
	}
	requires := dedupe(append(append([]string{}, declared...), inferRequires(working, sexAmbiguous)...))

	res := model.ConceptResolution{
		ConceptID:        id,
		Requires:         requires,
		MissingFacts:     missingFacts(in, withFacts, sexAmbiguous),
		Selector:         withFacts,
		ReverseSelectors: reverseSelectors,
	}
	if in.Reverse {
		res.ReverseSelector = selector.Canonical(reverseSelectors)
	}
	return res, nil
}

// effectiveSex falls back to a userSex fact when the caller passed no sex
func effectiveSex(sex model.Sex, facts model.Facts) model.Sex {
	if sex != model.SexUnknown || !facts.Has(model.FactUserSex) {
		return sex
	}
	if parsed, err := model.ParseSex(facts.Get(model.FactUserSex)); err == nil {
		return parsed
	}
	return sex
}

func inferRequires(sel string, sexAmbiguous bool) []string {
	var requires []string
	if selector.ContainsToken(sel, "xb") {
		requires = append(requires, model.RequireMaleSiblingAge)
	}
	if selector.ContainsToken(sel, "xs") {
		requires = append(requires, model.RequireFemaleSiblingAge)
	}
	if selector.HasAgeTie(sel) || selector.IsCousinBase(sel) {
		requires = append(requires, model.RequireCousinAge)
	}
	if sexAmbiguous {
		requires = append(requires, model.RequireUserSex)
	}
	return requires
}

// missingFacts lists unanswered facts. Sibling age facts are scoped to the
// chain position holding the unknown-age sibling and stay missing until the
// step itself is replaced; a step-scoped fact alone does not answer them.
func missingFacts(in Input, withFacts string, sexAmbiguous bool) []string {
	missing := []string{}
	for i, entry := range in.Chain {
		step, _ := in.Catalog.Lookup(entry.StepID)
		var key string
		switch step.Token {
		case "xb":
			key = model.BrotherAgeOrderKey(i)
		case "xs":
			key = model.SisterAgeOrderKey(i)
		default:
			continue
		}
		missing = append(missing, key)
	}

	if selector.IsCousinBase(withFacts) && !model.ValidAge(in.Facts.Get(model.FactCousinAgeRelative)) {
		missing = append(missing, model.FactCousinAgeRelative)
	}
	if sexAmbiguous {
		missing = append(missing, model.FactUserSex)
	}
	return missing
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
