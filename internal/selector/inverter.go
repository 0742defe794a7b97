package selector

import (
	"sort"
	"strings"

	"github.com/kkennyy/call-what-ah/internal/model"
)

// inverse lists the inverse tokens of a token, keyed by the known sex of
// the person at the other end. Unknown sex takes the union of both.
type inverse struct {
	male   []string
	female []string
}

var inversionTable = map[string]inverse{
	"f":  {male: []string{"s"}, female: []string{"d"}},
	"m":  {male: []string{"s"}, female: []string{"d"}},
	"s":  {male: []string{"f"}, female: []string{"m"}},
	"d":  {male: []string{"f"}, female: []string{"m"}},
	"h":  {male: []string{"w"}, female: []string{"w"}},
	"w":  {male: []string{"h"}, female: []string{"h"}},
	"ob": {male: []string{"lb"}, female: []string{"ls"}},
	"os": {male: []string{"lb"}, female: []string{"ls"}},
	"lb": {male: []string{"ob"}, female: []string{"os"}},
	"ls": {male: []string{"ob"}, female: []string{"os"}},
	"xb": {male: []string{"xb"}, female: []string{"xs"}},
	"xs": {male: []string{"xb"}, female: []string{"xs"}},
}

// InverseTokens returns the inverse options for one token. Age-tie markers
// are dropped; tokens outside the table invert to themselves.
func InverseTokens(token string, sex model.Sex) []string {
	base := BaseToken(token)
	inv, ok := inversionTable[base]
	if !ok {
		return []string{base}
	}
	switch sex {
	case model.SexMale:
		return inv.male
	case model.SexFemale:
		return inv.female
	default:
		return dedupe(append(append([]string{}, inv.male...), inv.female...))
	}
}

// Invert returns the sorted, deduplicated selectors describing the same
// relationship from the other endpoint.
func Invert(selector string, sex model.Sex) []string {
	tokens := Tokens(selector)
	if len(tokens) == 0 {
		return nil
	}

	acc := []string{""}
	for i := len(tokens) - 1; i >= 0; i-- {
		options := InverseTokens(tokens[i], sex)
		next := make([]string, 0, len(acc)*len(options))
		for _, prefix := range acc {
			for _, opt := range options {
				if prefix == "" {
					next = append(next, opt)
				} else {
					next = append(next, prefix+","+opt)
				}
			}
		}
		acc = dedupe(next)
	}

	sort.Strings(acc)
	return acc
}

// Canonical returns the sorted-first reverse selector, or "" when there is none
func Canonical(reverseSelectors []string) string {
	if len(reverseSelectors) == 0 {
		return ""
	}
	return reverseSelectors[0]
}

func dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
