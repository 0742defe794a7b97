package validate

import (
	"sort"

	"github.com/kkennyy/call-what-ah/internal/model"
)

// Citations lists every variant source in data, ordered by concept then
// dialect id
func Citations(data *model.DialectData) []model.Citation {
	if data == nil {
		return []model.Citation{}
	}

	ids := make([]string, 0, len(data.Concepts))
	for id := range data.Concepts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := []model.Citation{}
	for _, id := range ids {
		c := data.Concepts[id]
		dialects := make([]string, 0, len(c.Variants))
		for d := range c.Variants {
			dialects = append(dialects, d)
		}
		sort.Strings(dialects)
		for _, d := range dialects {
			for _, s := range c.Variants[d].Sources {
				out = append(out, model.Citation{ConceptID: id, DialectID: d, Source: s})
			}
		}
	}
	return out
}

// UniqueSources returns the first source seen for each distinct URL
func UniqueSources(citations []model.Citation) []model.Source {
	seen := make(map[string]bool)
	out := []model.Source{}
	for _, c := range citations {
		if c.Source.URL == "" || seen[c.Source.URL] {
			continue
		}
		seen[c.Source.URL] = true
		out = append(out, c.Source)
	}
	return out
}
