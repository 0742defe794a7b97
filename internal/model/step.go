package model

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxRank is the highest ordinal accepted on a rankable step.
const MaxRank = 10

// Step is an atomic kinship relation from the step catalog
type Step struct {
	ID        string `json:"id" yaml:"id"`
	Token     string `json:"selector" yaml:"selector"`     // Selector token (f, ob, xs, ...)
	Label     string `json:"label" yaml:"label"`           // English display label
	Rankable  bool   `json:"rankable" yaml:"rankable"`     // Supports an ordinal prefix (大哥, 二姐)
	TextToken string `json:"text_token" yaml:"text_token"` // Token used to render chain text
}

// StepCatalog is the read-only set of steps plus chain text rendering data
type StepCatalog struct {
	Steps     []Step            `json:"steps" yaml:"steps"`
	Numerals  map[string]string `json:"numerals" yaml:"numerals"`
	Connector string            `json:"connector" yaml:"connector"`

	byID    map[string]int
	byToken map[string]int
}

// NewStepCatalog creates a catalog with lookup indexes
func NewStepCatalog(steps []Step, numerals map[string]string, connector string) *StepCatalog {
	c := &StepCatalog{
		Steps:     steps,
		Numerals:  numerals,
		Connector: connector,
	}
	c.index()
	return c
}

func (c *StepCatalog) index() {
	c.byID = make(map[string]int, len(c.Steps))
	c.byToken = make(map[string]int, len(c.Steps))
	for i, s := range c.Steps {
		c.byID[s.ID] = i
		if _, exists := c.byToken[s.Token]; !exists {
			c.byToken[s.Token] = i
		}
	}
}

// Lookup returns the step with the given identifier
func (c *StepCatalog) Lookup(id string) (Step, bool) {
	if c == nil {
		return Step{}, false
	}
	if c.byID != nil {
		i, ok := c.byID[id]
		if !ok {
			return Step{}, false
		}
		return c.Steps[i], true
	}
	for _, s := range c.Steps {
		if s.ID == id {
			return s, true
		}
	}
	return Step{}, false
}

// ByToken returns the first step carrying the given selector token
func (c *StepCatalog) ByToken(token string) (Step, bool) {
	if c == nil {
		return Step{}, false
	}
	if c.byToken != nil {
		i, ok := c.byToken[token]
		if !ok {
			return Step{}, false
		}
		return c.Steps[i], true
	}
	for _, s := range c.Steps {
		if s.Token == token {
			return s, true
		}
	}
	return Step{}, false
}

// Numeral returns the ordinal character for a rank, if the catalog has one
func (c *StepCatalog) Numeral(rank int) (string, bool) {
	if c == nil || rank <= 0 {
		return "", false
	}
	n, ok := c.Numerals[strconv.Itoa(rank)]
	return n, ok && n != ""
}

// ChainEntry references a step plus an optional rank (0 = none)
type ChainEntry struct {
	StepID string `json:"step_id" yaml:"step_id"`
	Rank   int    `json:"rank,omitempty" yaml:"rank,omitempty"`
}

// Chain is an ordered path of relations from the reference person outward
type Chain []ChainEntry

// NewChain builds an unranked chain from step identifiers
func NewChain(stepIDs ...string) Chain {
	chain := make(Chain, len(stepIDs))
	for i, id := range stepIDs {
		chain[i] = ChainEntry{StepID: id}
	}
	return chain
}

// ParseChain parses "father,olderBrother:2,son" into a chain
func ParseChain(spec string) (Chain, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, ErrEmptyChain
	}

	parts := strings.Split(spec, ",")
	chain := make(Chain, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("chain entry %d: %w", i+1, ErrEmptyChain)
		}

		entry := ChainEntry{StepID: part}
		if id, rankStr, ok := strings.Cut(part, ":"); ok {
			rank, err := strconv.Atoi(strings.TrimSpace(rankStr))
			if err != nil || rank < 1 || rank > MaxRank {
				return nil, &InvalidRankError{Index: i, Rank: rankStr}
			}
			entry.StepID = strings.TrimSpace(id)
			entry.Rank = rank
		}
		chain = append(chain, entry)
	}

	return chain, nil
}

// String renders the chain back into its parseable form
func (c Chain) String() string {
	parts := make([]string, len(c))
	for i, e := range c {
		if e.Rank > 0 {
			parts[i] = fmt.Sprintf("%s:%d", e.StepID, e.Rank)
		} else {
			parts[i] = e.StepID
		}
	}
	return strings.Join(parts, ",")
}

// Clone returns an independent copy of the chain
func (c Chain) Clone() Chain {
	if c == nil {
		return nil
	}
	out := make(Chain, len(c))
	copy(out, c)
	return out
}

// Validate checks every entry against the catalog
func (c Chain) Validate(catalog *StepCatalog) error {
	if len(c) == 0 {
		return ErrEmptyChain
	}
	for i, e := range c {
		if _, ok := catalog.Lookup(e.StepID); !ok {
			return &UnknownStepError{Index: i, StepID: e.StepID}
		}
		if e.Rank < 0 || e.Rank > MaxRank {
			return &InvalidRankError{Index: i, Rank: strconv.Itoa(e.Rank)}
		}
	}
	return nil
}
