package selector

import "strings"

var tokenGloss = map[string]string{
	"f":  "father",
	"m":  "mother",
	"ob": "older brother",
	"lb": "younger brother",
	"xb": "brother (age unknown)",
	"os": "older sister",
	"ls": "younger sister",
	"xs": "sister (age unknown)",
	"s":  "son",
	"d":  "daughter",
	"h":  "husband",
	"w":  "wife",
}

// EnglishGloss renders a selector as English ("father's older brother's son (older)")
func EnglishGloss(selector string) string {
	tokens := Tokens(selector)
	parts := make([]string, len(tokens))
	for i, raw := range tokens {
		base := BaseToken(raw)
		word, ok := tokenGloss[base]
		if !ok {
			word = base
		}
		switch {
		case strings.Contains(raw, MarkerOlder):
			word += " (older)"
		case strings.Contains(raw, MarkerYounger):
			word += " (younger)"
		}
		parts[i] = word
	}
	return strings.Join(parts, "'s ")
}
