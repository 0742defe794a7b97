// Package selector derives the compact token path ("f,ob,s") that
// identifies a relation chain's structural shape.
package selector

import (
	"regexp"
	"strings"

	"github.com/kkennyy/call-what-ah/internal/model"
)

// Age-tie markers appended to a cousin's child token once relative age is known
const (
	MarkerOlder   = "&o"
	MarkerYounger = "&l"
)

var markerPattern = regexp.MustCompile(`&[ol\d]+`)

// Build maps each chain entry to its step token, in chain order.
// Ranks never appear in the selector.
func Build(chain model.Chain, catalog *model.StepCatalog) (string, error) {
	if len(chain) == 0 {
		return "", model.ErrEmptyChain
	}

	tokens := make([]string, len(chain))
	for i, entry := range chain {
		step, ok := catalog.Lookup(entry.StepID)
		if !ok {
			return "", &model.UnknownStepError{Index: i, StepID: entry.StepID}
		}
		tokens[i] = step.Token
	}

	return strings.Join(tokens, ","), nil
}

// ChainText renders the chain as text for the baseline lexicon lookup.
// A ranked rankable step becomes numeral + first character of its text token.
func ChainText(chain model.Chain, catalog *model.StepCatalog) (string, error) {
	if len(chain) == 0 {
		return "", model.ErrEmptyChain
	}

	parts := make([]string, len(chain))
	for i, entry := range chain {
		step, ok := catalog.Lookup(entry.StepID)
		if !ok {
			return "", &model.UnknownStepError{Index: i, StepID: entry.StepID}
		}
		parts[i] = step.TextToken
		if entry.Rank > 0 && step.Rankable {
			if numeral, ok := catalog.Numeral(entry.Rank); ok {
				parts[i] = numeral + firstRune(step.TextToken)
			}
		}
	}

	return strings.Join(parts, catalog.Connector), nil
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// Tokens splits a selector, dropping empty tokens
func Tokens(selector string) []string {
	if selector == "" {
		return nil
	}
	raw := strings.Split(selector, ",")
	tokens := raw[:0]
	for _, t := range raw {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// BaseToken strips any age-tie marker from a token
func BaseToken(token string) string {
	return markerPattern.ReplaceAllString(token, "")
}

var cousinBranches = map[string]bool{
	"ob": true, "lb": true, "xb": true,
	"os": true, "ls": true, "xs": true,
}

// IsCousinBase reports whether the selector is a parent's sibling's child
// without an age-tie marker (f|m, sibling, s|d, optionally more in between).
func IsCousinBase(selector string) bool {
	tokens := Tokens(selector)
	if len(tokens) < 3 {
		return false
	}
	if tokens[0] != "f" && tokens[0] != "m" {
		return false
	}
	if !cousinBranches[tokens[1]] || !strings.HasPrefix(selector, tokens[0]+","+tokens[1]+",") {
		return false
	}
	return strings.HasSuffix(selector, ",s") || strings.HasSuffix(selector, ",d")
}

// WithAgeTie annotates the trailing child token of a cousin selector with
// the marker for cousinAgeRelative. Other selectors are returned unchanged.
func WithAgeTie(selector string, cousinAgeRelative string) string {
	if !IsCousinBase(selector) {
		return selector
	}
	switch cousinAgeRelative {
	case model.AgeOlder:
		return selector + MarkerOlder
	case model.AgeYounger:
		return selector + MarkerYounger
	default:
		return selector
	}
}

// HasAgeTie reports whether any token carries an age-tie marker
func HasAgeTie(selector string) bool {
	return strings.Contains(selector, MarkerOlder) || strings.Contains(selector, MarkerYounger)
}

// ContainsToken reports whether a base token appears in the selector
func ContainsToken(selector, token string) bool {
	for _, t := range Tokens(selector) {
		if BaseToken(t) == token {
			return true
		}
	}
	return false
}
