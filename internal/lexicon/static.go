package lexicon

import (
	"context"

	"github.com/kkennyy/call-what-ah/internal/model"
)

type staticKey struct {
	text    string
	reverse bool
	sex     string
}

// StaticProvider answers from a bundled lexicon table
type StaticProvider struct {
	entries map[staticKey][]string
}

// NewStaticProvider indexes lex. A nil lexicon answers nothing.
func NewStaticProvider(lex *model.Lexicon) *StaticProvider {
	p := &StaticProvider{entries: make(map[staticKey][]string)}
	if lex == nil {
		return p
	}
	for _, e := range lex.Entries {
		k := staticKey{text: e.Text, reverse: e.Reverse, sex: e.Sex}
		if _, dup := p.entries[k]; dup {
			continue
		}
		p.entries[k] = e.Terms
	}
	return p
}

// Name returns the provider name
func (p *StaticProvider) Name() string {
	return "static"
}

// Terms prefers an entry for the query's sex over one for any sex
func (p *StaticProvider) Terms(_ context.Context, q Query) ([]string, error) {
	if q.Sex != model.SexUnknown {
		if terms, ok := p.entries[staticKey{text: q.Text, reverse: q.Reverse, sex: q.Sex.String()}]; ok {
			return append([]string(nil), terms...), nil
		}
	}
	if terms, ok := p.entries[staticKey{text: q.Text, reverse: q.Reverse}]; ok {
		return append([]string(nil), terms...), nil
	}
	return []string{}, nil
}
