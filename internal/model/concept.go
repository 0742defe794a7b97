package model

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Dialect identifiers with special meaning
const (
	DialectStandard = "mandarin_standard"
	DialectCustom   = "custom"
)

// Confidence is the trust level attached to a dialect variant or selection
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Source is a citation backing a dialect variant
type Source struct {
	URL      string `json:"url" yaml:"url"`
	Title    string `json:"title" yaml:"title"`
	Accessed string `json:"accessed" yaml:"accessed"`
	Notes    string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// DialectVariant is one dialect's wording for a concept
type DialectVariant struct {
	Preferred    string     `json:"preferred" yaml:"preferred"`
	Alternatives []string   `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`
	Confidence   Confidence `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Sources      []Source   `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// Concept is a canonical kinship identity with per-dialect wording
type Concept struct {
	Gloss     string                    `json:"gloss_en" yaml:"gloss_en"`
	Requires  []string                  `json:"requires,omitempty" yaml:"requires,omitempty"`
	Canonical []string                  `json:"canonical_mandarin,omitempty" yaml:"canonical_mandarin,omitempty"`
	Variants  map[string]DialectVariant `json:"variants,omitempty" yaml:"variants,omitempty"`
}

// Variant returns the concept's variant for a dialect
func (c *Concept) Variant(dialectID string) (DialectVariant, bool) {
	if c == nil {
		return DialectVariant{}, false
	}
	v, ok := c.Variants[dialectID]
	return v, ok
}

// Dialect is a selectable dialect grouping
type Dialect struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// DatasetMeta describes a generated dataset
type DatasetMeta struct {
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	GeneratedAt string `json:"generatedAt,omitempty" yaml:"generatedAt,omitempty"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// DialectData is the read-only dialect dataset snapshot
type DialectData struct {
	Meta     DatasetMeta         `json:"meta" yaml:"meta"`
	Dialects []Dialect           `json:"dialects" yaml:"dialects"`
	Concepts map[string]*Concept `json:"concepts" yaml:"concepts"`
}

// Concept returns the concept for id, or nil
func (d *DialectData) Concept(id string) *Concept {
	if d == nil {
		return nil
	}
	return d.Concepts[id]
}

// HasDialect reports whether the dataset lists the dialect
func (d *DialectData) HasDialect(id string) bool {
	if d == nil {
		return false
	}
	for _, dl := range d.Dialects {
		if dl.ID == id {
			return true
		}
	}
	return false
}

// Override is a user-pinned term for a concept. It decodes from a bare
// string or from {term, sourceDialectId}.
type Override struct {
	Term            string `json:"term" yaml:"term"`
	SourceDialectID string `json:"sourceDialectId,omitempty" yaml:"sourceDialectId,omitempty"`
}

// Overrides maps concept ids to pinned terms
type Overrides map[string]Override

// Clone returns an independent copy
func (o Overrides) Clone() Overrides {
	out := make(Overrides, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

type overrideFields Override

// UnmarshalYAML accepts a scalar term or a mapping
func (o *Override) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		o.Term = value.Value
		o.SourceDialectID = ""
		return nil
	case yaml.MappingNode:
		var f overrideFields
		if err := value.Decode(&f); err != nil {
			return fmt.Errorf("decode override: %w", err)
		}
		*o = Override(f)
		return nil
	default:
		return fmt.Errorf("decode override: unexpected YAML node kind %d", value.Kind)
	}
}

// MarshalYAML writes the bare term when no source dialect is recorded
func (o Override) MarshalYAML() (interface{}, error) {
	if o.SourceDialectID == "" {
		return o.Term, nil
	}
	return overrideFields(o), nil
}

// UnmarshalJSON accepts a string term or an object
func (o *Override) UnmarshalJSON(data []byte) error {
	var term string
	if err := json.Unmarshal(data, &term); err == nil {
		o.Term = term
		o.SourceDialectID = ""
		return nil
	}
	var f overrideFields
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decode override: %w", err)
	}
	*o = Override(f)
	return nil
}
