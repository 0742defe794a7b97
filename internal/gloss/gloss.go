// Package gloss finds an English gloss for a kinship term.
package gloss

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kkennyy/call-what-ah/internal/model"
	"github.com/kkennyy/call-what-ah/internal/selector"
)

// Separator joins glosses of an ambiguous term
const Separator = " / "

// Index maps a term to every concept gloss that lists it
type Index map[string][]string

// BuildIndex collects canonical and variant terms across all concepts
func BuildIndex(data *model.DialectData) Index {
	index := Index{}
	if data == nil {
		return index
	}

	ids := make([]string, 0, len(data.Concepts))
	for id := range data.Concepts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		c := data.Concepts[id]
		if c == nil {
			continue
		}
		g := strings.TrimSpace(c.Gloss)
		if g == "" {
			continue
		}
		for term := range conceptTerms(c) {
			index[term] = append(index[term], g)
		}
	}

	for term, glosses := range index {
		index[term] = sortGlosses(glosses)
	}
	return index
}

// Lookup returns the sorted glosses for term
func (ix Index) Lookup(term string) []string {
	return ix[term]
}

// Input is what Resolve reads
type Input struct {
	Term            string
	Concept         *model.Concept
	Selector        string
	ReverseSelector string
	Reverse         bool
	Index           Index
}

// Resolve returns the concept gloss when the term belongs to the concept,
// else the indexed gloss (ambiguous ones joined by Separator), else a
// gloss synthesized from the selector. An empty term has no gloss.
func Resolve(in Input) string {
	if in.Term == "" {
		return ""
	}

	if in.Concept != nil {
		if g := strings.TrimSpace(in.Concept.Gloss); g != "" {
			if _, ok := conceptTerms(in.Concept)[in.Term]; ok {
				return g
			}
		}
	}

	if glosses := sortGlosses(in.Index.Lookup(in.Term)); len(glosses) > 0 {
		return strings.Join(glosses, Separator)
	}

	sel := in.Selector
	if in.Reverse && in.ReverseSelector != "" {
		sel = in.ReverseSelector
	}
	return selector.EnglishGloss(sel)
}

func conceptTerms(c *model.Concept) map[string]struct{} {
	terms := map[string]struct{}{}
	for _, t := range c.Canonical {
		if t != "" {
			terms[t] = struct{}{}
		}
	}
	for _, v := range c.Variants {
		if v.Preferred != "" {
			terms[v.Preferred] = struct{}{}
		}
		for _, t := range v.Alternatives {
			if t != "" {
				terms[t] = struct{}{}
			}
		}
	}
	return terms
}

// sortGlosses dedupes and orders glosses ignoring case and diacritics
func sortGlosses(glosses []string) []string {
	seen := make(map[string]bool, len(glosses))
	out := make([]string, 0, len(glosses))
	for _, g := range glosses {
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	c := collate.New(language.English, collate.IgnoreCase, collate.IgnoreDiacritics)
	c.SortStrings(out)
	return out
}
