package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kkennyy/call-what-ah/internal/model"
)

// NormalizeStats counts what Normalize changed
type NormalizeStats struct {
	Concepts            int `json:"concepts"`
	Variants            int `json:"variants"`
	SourcesDropped      int `json:"sources_dropped"`
	AlternativesDropped int `json:"alternatives_dropped"`
}

// Normalize returns a cleaned copy of data. Source fields are trimmed,
// sources missing a url, title or access date are dropped, and each
// variant's alternatives are deduplicated without the preferred term.
func Normalize(data *model.DialectData) (*model.DialectData, NormalizeStats) {
	var stats NormalizeStats
	if data == nil {
		return nil, stats
	}

	out := &model.DialectData{
		Meta:     data.Meta,
		Dialects: append([]model.Dialect(nil), data.Dialects...),
		Concepts: make(map[string]*model.Concept, len(data.Concepts)),
	}

	for id, c := range data.Concepts {
		if c == nil {
			continue
		}
		stats.Concepts++
		nc := &model.Concept{
			Gloss:     c.Gloss,
			Requires:  append([]string(nil), c.Requires...),
			Canonical: append([]string(nil), c.Canonical...),
			Variants:  make(map[string]model.DialectVariant, len(c.Variants)),
		}
		for dialectID, v := range c.Variants {
			stats.Variants++
			nv, dropped, droppedAlts := normalizeVariant(v)
			stats.SourcesDropped += dropped
			stats.AlternativesDropped += droppedAlts
			nc.Variants[dialectID] = nv
		}
		out.Concepts[id] = nc
	}
	return out, stats
}

func normalizeVariant(v model.DialectVariant) (model.DialectVariant, int, int) {
	out := model.DialectVariant{
		Preferred:  strings.TrimSpace(v.Preferred),
		Confidence: v.Confidence,
	}

	dropped := 0
	for _, s := range v.Sources {
		s = model.Source{
			URL:      strings.TrimSpace(s.URL),
			Title:    strings.TrimSpace(s.Title),
			Accessed: strings.TrimSpace(s.Accessed),
			Notes:    strings.TrimSpace(s.Notes),
		}
		if s.URL == "" || s.Title == "" || s.Accessed == "" {
			dropped++
			continue
		}
		out.Sources = append(out.Sources, s)
	}

	seen := map[string]bool{out.Preferred: true}
	for _, alt := range v.Alternatives {
		alt = strings.TrimSpace(alt)
		if alt == "" || seen[alt] {
			continue
		}
		seen[alt] = true
		out.Alternatives = append(out.Alternatives, alt)
	}
	return out, dropped, len(v.Alternatives) - len(out.Alternatives)
}

// Write encodes data as JSON when name ends in .json, YAML otherwise
func Write(w io.Writer, name string, data interface{}) error {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
