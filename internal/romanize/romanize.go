// Package romanize renders recommended terms in a dialect's romanization,
// falling back to Mandarin pinyin.
package romanize

import (
	"strings"

	"github.com/kkennyy/call-what-ah/internal/model"
)

const defaultSystemName = "Dialect Romanization"

// Converter produces Mandarin pinyin for a term
type Converter interface {
	// Syllables returns one entry per syllable
	Syllables(term string) ([]string, error)
	// Text returns the whole reading as one string
	Text(term string) (string, error)
}

// Dialect romanizes term for a non-standard dialect. An explicit dialect
// override wins; otherwise the Mandarin reading is returned flagged as a
// low-confidence fallback. The Mandarin reading is mandarinPinyin when
// given, else the dataset's fallback map. Returns nil for the standard
// dialect or when nothing is known.
func Dialect(term, dialectID string, data *model.RomanizationData, mandarinPinyin string) *model.Romanization {
	if term == "" || dialectID == "" || data == nil || dialectID == model.DialectStandard {
		return nil
	}

	systemName := defaultSystemName
	if sys, ok := data.Systems[dialectID]; ok && sys.Name != "" {
		systemName = sys.Name
	}

	if o, ok := data.Override(dialectID, term); ok && o.Roman != "" {
		confidence := o.Confidence
		if confidence == "" {
			confidence = model.ConfidenceLow
		}
		return &model.Romanization{
			Text:       o.Roman,
			SystemName: systemName,
			Confidence: confidence,
		}
	}

	if mandarinPinyin == "" {
		mandarinPinyin = data.MandarinFallback[term]
	}
	if mandarinPinyin == "" {
		return nil
	}
	return &model.Romanization{
		Text:       mandarinPinyin,
		SystemName: systemName,
		IsFallback: true,
		Confidence: model.ConfidenceLow,
	}
}

// MandarinPinyin joins the converter's syllables, falling back to its text
// output. Converter failures and panics yield "".
func MandarinPinyin(term string, conv Converter) (pinyin string) {
	if term == "" || conv == nil {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			pinyin = ""
		}
	}()

	syllables, err := conv.Syllables(term)
	if err != nil {
		return ""
	}
	if len(syllables) > 0 {
		parts := make([]string, 0, len(syllables))
		for _, s := range syllables {
			if s = strings.TrimSpace(s); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	}

	text, err := conv.Text(term)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
