package romanize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkennyy/call-what-ah/internal/dataset"
	"github.com/kkennyy/call-what-ah/internal/model"
)

func romanization(t *testing.T) *model.RomanizationData {
	t.Helper()
	b, err := dataset.Default()
	require.NoError(t, err)
	return b.Romanization
}

func TestDialect_Override(t *testing.T) {
	r := Dialect("姑妈", "cantonese_sg", romanization(t), "gu ma")
	require.NotNil(t, r)
	assert.Equal(t, "gu maa1", r.Text)
	assert.Equal(t, "Jyutping", r.SystemName)
	assert.False(t, r.IsFallback)
	assert.Equal(t, model.ConfidenceHigh, r.Confidence)
}

func TestDialect_MandarinArgumentFallback(t *testing.T) {
	r := Dialect("奶奶", "hokkien_sg", romanization(t), "nai nai")
	require.NotNil(t, r)
	assert.Equal(t, "nai nai", r.Text)
	assert.Equal(t, "Tai-lo", r.SystemName)
	assert.True(t, r.IsFallback)
	assert.Equal(t, model.ConfidenceLow, r.Confidence)
}

func TestDialect_EmbeddedMapFallback(t *testing.T) {
	r := Dialect("奶奶", "teochew_sg", romanization(t), "")
	require.NotNil(t, r)
	assert.Equal(t, "Peng'im", r.SystemName)
	assert.True(t, r.IsFallback)
	assert.NotEmpty(t, r.Text)
}

func TestDialect_Nil(t *testing.T) {
	data := romanization(t)

	assert.Nil(t, Dialect("__missing_term__", "cantonese_sg", data, ""))
	assert.Nil(t, Dialect("姑妈", model.DialectStandard, data, "gu ma"))
	assert.Nil(t, Dialect("", "cantonese_sg", data, "gu ma"))
	assert.Nil(t, Dialect("姑妈", "cantonese_sg", nil, "gu ma"))
}

func TestDialect_DefaultsForSparseData(t *testing.T) {
	data := &model.RomanizationData{
		Overrides: map[string]map[string]model.RomanizationOverride{
			"family_x": {"阿嬷": {Roman: "a-ma"}},
		},
	}
	r := Dialect("阿嬷", "family_x", data, "")
	require.NotNil(t, r)
	assert.Equal(t, "Dialect Romanization", r.SystemName)
	assert.Equal(t, model.ConfidenceLow, r.Confidence)
	assert.False(t, r.IsFallback)
}

func TestDialect_Deterministic(t *testing.T) {
	data := romanization(t)
	for _, id := range []string{"cantonese_sg", "hokkien_sg", "teochew_sg", "hakka_sg", "hainanese_sg", model.DialectCustom} {
		assert.Equal(t, Dialect("姑妈", id, data, "gu ma"), Dialect("姑妈", id, data, "gu ma"), id)
	}
}

type stubConverter struct {
	syllables []string
	text      string
	err       error
	panics    bool
}

func (s stubConverter) Syllables(string) ([]string, error) {
	if s.panics {
		panic("boom")
	}
	return s.syllables, s.err
}

func (s stubConverter) Text(string) (string, error) {
	return s.text, s.err
}

func TestMandarinPinyin(t *testing.T) {
	tests := []struct {
		name string
		conv Converter
		want string
	}{
		{"syllables", stubConverter{syllables: []string{"gu1", " ", "ma1"}}, "gu1 ma1"},
		{"text fallback", stubConverter{text: " gu1 ma1 "}, "gu1 ma1"},
		{"error", stubConverter{err: errors.New("boom")}, ""},
		{"panic", stubConverter{panics: true}, ""},
		{"nil converter", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MandarinPinyin("姑妈", tt.conv))
		})
	}
}

func TestGoPinyin(t *testing.T) {
	assert.Equal(t, "gū mā", MandarinPinyin("姑妈", NewGoPinyin()))
}
