package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkennyy/call-what-ah/internal/dataset"
	"github.com/kkennyy/call-what-ah/internal/model"
)

func dialects(t *testing.T) *model.DialectData {
	t.Helper()
	b, err := dataset.Default()
	require.NoError(t, err)
	return b.Dialects
}

func TestSelect_DialectVariant(t *testing.T) {
	data := dialects(t)

	sel := Select(Input{
		ConceptID: "paternal_aunt_elder",
		DialectID: "cantonese_sg",
		Data:      data,
		Baseline:  []string{"大姑", "姑妈", "姑姑"},
	})
	assert.Equal(t, "姑妈", sel.Recommended)
	assert.Equal(t, model.ProvenanceDialectVariant, sel.Provenance)
	assert.Equal(t, model.ConfidenceHigh, sel.Confidence)
	assert.Equal(t, "大姑", sel.StandardPreferred)
	assert.Contains(t, sel.Alternatives, "大姑")
	assert.NotContains(t, sel.Alternatives, "姑妈")
	assert.NotNil(t, sel.Concept)
}

func TestSelect_StandardTermAlwaysOffered(t *testing.T) {
	data := dialects(t)

	sel := Select(Input{
		ConceptID: "paternal_aunt_elder",
		DialectID: "hokkien_sg",
		Data:      data,
		Baseline:  []string{"大姑", "姑妈"},
	})
	assert.Equal(t, "阿姑", sel.Recommended)
	assert.Contains(t, sel.Alternatives, "大姑")
}

func TestSelect_CustomOverride(t *testing.T) {
	data := dialects(t)

	sel := Select(Input{
		ConceptID: "paternal_aunt_elder",
		DialectID: model.DialectCustom,
		Data:      data,
		Baseline:  []string{"大姑", "姑妈", "姑姑"},
		Overrides: model.Overrides{"paternal_aunt_elder": {Term: "姑姐", SourceDialectID: "cantonese_sg"}},
	})
	assert.Equal(t, "姑姐", sel.Recommended)
	assert.Equal(t, model.ProvenanceCustomOverride, sel.Provenance)
	assert.Equal(t, model.ConfidenceHigh, sel.Confidence)
	assert.Equal(t, "cantonese_sg", sel.CustomSourceDialectID)
	assert.Contains(t, sel.Alternatives, "大姑")
}

func TestSelect_OverrideIgnoredOutsideCustom(t *testing.T) {
	data := dialects(t)

	sel := Select(Input{
		ConceptID: "paternal_aunt_elder",
		DialectID: "cantonese_sg",
		Data:      data,
		Baseline:  []string{"大姑"},
		Overrides: model.Overrides{"paternal_aunt_elder": {Term: "姑姐"}},
	})
	assert.Equal(t, "姑妈", sel.Recommended)
	assert.Empty(t, sel.CustomSourceDialectID)
}

func TestSelect_UnknownConceptFallsBackToBaseline(t *testing.T) {
	data := dialects(t)

	sel := Select(Input{
		ConceptID: "selector_nonexistent",
		DialectID: "teochew_sg",
		Data:      data,
		Baseline:  []string{"伯父", "伯伯"},
	})
	assert.Equal(t, "伯父", sel.Recommended)
	assert.Equal(t, model.ProvenanceFallbackMandarin, sel.Provenance)
	assert.Equal(t, model.ConfidenceLow, sel.Confidence)
	assert.Contains(t, sel.Alternatives, "伯伯")
	assert.Nil(t, sel.Concept)
}

func TestSelect_RequiresResolution(t *testing.T) {
	data := dialects(t)

	sel := Select(Input{
		ConceptID:          "paternal_uncle_unspecified",
		DialectID:          model.DialectStandard,
		Data:               data,
		Baseline:           []string{"伯父", "叔叔"},
		RequiresResolution: true,
	})
	assert.Empty(t, sel.Recommended)
	assert.False(t, sel.HasRecommendation())
	assert.True(t, sel.RequiresResolution)
	assert.Contains(t, sel.Alternatives, "伯父")
	assert.Contains(t, sel.Alternatives, "叔叔")
}

func TestSelect_RequiresResolutionIgnoresOverride(t *testing.T) {
	data := dialects(t)

	sel := Select(Input{
		ConceptID:          "paternal_aunt_elder",
		DialectID:          model.DialectCustom,
		Data:               data,
		Overrides:          model.Overrides{"paternal_aunt_elder": {Term: "姑姐"}},
		RequiresResolution: true,
	})
	assert.Empty(t, sel.Recommended)
	assert.Equal(t, model.ProvenanceFallbackMandarin, sel.Provenance)
}

func TestSelect_UnsourcedVariantDemoted(t *testing.T) {
	data := &model.DialectData{Concepts: map[string]*model.Concept{
		"paternal_aunt_elder": {
			Canonical: []string{"大姑", "姑妈"},
			Variants: map[string]model.DialectVariant{
				model.DialectStandard: {Preferred: "大姑", Alternatives: []string{"姑妈"}, Confidence: model.ConfidenceMedium},
				"cantonese_sg":        {Preferred: "姑奶奶", Confidence: model.ConfidenceHigh},
			},
		},
	}}

	sel := Select(Input{
		ConceptID: "paternal_aunt_elder",
		DialectID: "cantonese_sg",
		Data:      data,
		Baseline:  []string{"大姑", "姑妈"},
	})
	assert.Equal(t, "大姑", sel.Recommended)
	assert.Equal(t, model.ProvenanceFallbackMandarin, sel.Provenance)
	assert.Equal(t, model.ConfidenceLow, sel.Confidence)
}

func TestSelect_UnsourcedVariantKeptWhenInBaseline(t *testing.T) {
	data := &model.DialectData{Concepts: map[string]*model.Concept{
		"paternal_aunt_elder": {
			Variants: map[string]model.DialectVariant{
				model.DialectStandard: {Preferred: "大姑"},
				"cantonese_sg":        {Preferred: "姑妈", Confidence: model.ConfidenceMedium},
			},
		},
	}}

	sel := Select(Input{
		ConceptID: "paternal_aunt_elder",
		DialectID: "cantonese_sg",
		Data:      data,
		Baseline:  []string{"大姑", "姑妈"},
	})
	assert.Equal(t, "姑妈", sel.Recommended)
	assert.Equal(t, model.ProvenanceDialectVariant, sel.Provenance)
	assert.Equal(t, model.ConfidenceMedium, sel.Confidence)
	assert.Equal(t, []string{"大姑"}, sel.Alternatives)
}

func TestSelect_NoDataNoBaseline(t *testing.T) {
	sel := Select(Input{ConceptID: "x", DialectID: "cantonese_sg"})
	assert.Empty(t, sel.Recommended)
	assert.Empty(t, sel.Alternatives)
	assert.Equal(t, model.ConfidenceLow, sel.Confidence)
}

func TestSelect_Deterministic(t *testing.T) {
	data := dialects(t)
	in := Input{ConceptID: "maternal_uncle", DialectID: "hakka_sg", Data: data, Baseline: []string{"舅舅", "舅父"}}
	assert.Equal(t, Select(in), Select(in))
}

func TestAcceptable(t *testing.T) {
	sel := model.Selection{Recommended: "姑妈", Alternatives: []string{"大姑", "姑姑"}}
	assert.Equal(t, []string{"大姑", "姑姑", "小姑"}, Acceptable(sel, []string{"姑妈", "小姑", "大姑"}))

	none := model.Selection{Alternatives: []string{"伯父"}}
	assert.Equal(t, []string{"伯父", "叔叔"}, Acceptable(none, []string{"叔叔"}))
}
