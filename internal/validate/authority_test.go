package validate

import (
	"testing"

	"github.com/kkennyy/call-what-ah/internal/model"
)

func TestAuthorityClassifier_Defaults(t *testing.T) {
	classifier := NewAuthorityClassifier(nil)

	tests := []struct {
		url      string
		expected model.AuthorityTier
		desc     string
	}{
		{"https://humanum.arts.cuhk.edu.hk/Lexis/lexi-can/search.php?q=%A7%42", model.TierPrimary, "Cantonese lexicon"},
		{"https://sutian.moe.edu.tw/", model.TierPrimary, "Taiwanese Hokkien dictionary"},
		{"https://hakkadict.moe.edu.tw/", model.TierPrimary, "Hakka dictionary"},
		{"https://www.singaporeccc.org.sg/our-work/", model.TierSecondary, "cultural centre with subdomain"},
		{"https://zh.wikipedia.org/wiki/親屬", model.TierSecondary, "Wikipedia"},
		{"https://en.wiktionary.org/wiki/阿伯", model.TierSecondary, "Wiktionary"},
		{"https://github.com/mumuy/relationship", model.TierTertiary, "code repository"},
		{"https://www.moe.gov.sg/", model.TierPrimary, ".gov.sg heuristic"},
		{"https://mit.edu/research", model.TierPrimary, ".edu heuristic"},
		{"https://oxford.ac.uk/research", model.TierPrimary, ".ac.uk heuristic"},
		{"https://HakkaDict.MOE.edu.tw:443/x", model.TierPrimary, "host case and port ignored"},
		{"https://notwikipedia.org/", model.TierTertiary, "suffix must align on a label"},
		{"not-a-url", model.TierTertiary, "no host"},
		{"://missing-scheme", model.TierTertiary, "malformed"},
		{"", model.TierTertiary, "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := classifier.Classify(tt.url)
			if result != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, result)
			}
		})
	}
}

func TestAuthorityClassifier_DomainMapWins(t *testing.T) {
	config := &model.AuthorityConfig{
		PrimaryDomains: []string{"wikipedia.org"},
		DomainMap: map[string]string{
			"zh.wikipedia.org": "secondary",
			"Myblog.com":       "tertiary",
		},
	}

	classifier := NewAuthorityClassifier(config)

	if got := classifier.Classify("https://zh.wikipedia.org/wiki/x"); got != model.TierSecondary {
		t.Errorf("Expected secondary, got %v", got)
	}
	if got := classifier.Classify("https://en.wikipedia.org/wiki/x"); got != model.TierPrimary {
		t.Errorf("Expected primary, got %v", got)
	}
	if got := classifier.Classify("https://myblog.com/post"); got != model.TierTertiary {
		t.Errorf("Expected tertiary, got %v", got)
	}
}

func TestAuthorityClassifier_MostSpecificDomain(t *testing.T) {
	config := &model.AuthorityConfig{
		PrimaryDomains:   []string{"dict.example.org"},
		SecondaryDomains: []string{"example.org"},
	}

	classifier := NewAuthorityClassifier(config)

	if got := classifier.Classify("https://dict.example.org/a"); got != model.TierPrimary {
		t.Errorf("Expected primary, got %v", got)
	}
	if got := classifier.Classify("https://blog.example.org/a"); got != model.TierSecondary {
		t.Errorf("Expected secondary, got %v", got)
	}
}

func TestAuthorityClassifier_PathPatterns(t *testing.T) {
	config := &model.AuthorityConfig{
		PathPatterns: []model.PathPattern{
			{Pattern: "^/Lexis/", Tier: "primary"},
			{Pattern: "[", Tier: "primary"},
		},
	}

	classifier := NewAuthorityClassifier(config)

	if got := classifier.Classify("https://mirror.example.com/Lexis/lexi-can/"); got != model.TierPrimary {
		t.Errorf("Expected primary, got %v", got)
	}
	if got := classifier.Classify("https://mirror.example.com/blog/"); got != model.TierTertiary {
		t.Errorf("Expected tertiary, got %v", got)
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		input    string
		expected model.AuthorityTier
	}{
		{"primary", model.TierPrimary},
		{"PRIMARY", model.TierPrimary},
		{"1", model.TierPrimary},
		{"secondary", model.TierSecondary},
		{"2", model.TierSecondary},
		{"tertiary", model.TierTertiary},
		{"3", model.TierTertiary},
		{"unknown", model.TierTertiary},
		{"", model.TierTertiary},
	}

	for _, tt := range tests {
		if got := ParseTier(tt.input); got != tt.expected {
			t.Errorf("ParseTier(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
