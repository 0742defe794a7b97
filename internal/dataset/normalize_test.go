package dataset

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkennyy/call-what-ah/internal/model"
)

func TestNormalize_CleansVariants(t *testing.T) {
	in := &model.DialectData{
		Dialects: []model.Dialect{{ID: "cantonese_sg", Label: "Cantonese"}},
		Concepts: map[string]*model.Concept{
			"paternal_aunt_elder": {
				Gloss: "father's older sister",
				Variants: map[string]model.DialectVariant{
					"cantonese_sg": {
						Preferred:    "姑妈",
						Alternatives: []string{"姑姐", "姑妈", " 姑姐 ", "", "大姑"},
						Confidence:   model.ConfidenceHigh,
						Sources: []model.Source{
							{URL: " https://example.com/a ", Title: " A ", Accessed: "2026-02-16 ", Notes: " note "},
							{URL: "https://example.com/b", Title: "", Accessed: "2026-02-16"},
							{URL: "", Title: "C", Accessed: "2026-02-16"},
						},
					},
				},
			},
		},
	}

	out, stats := Normalize(in)
	v := out.Concept("paternal_aunt_elder").Variants["cantonese_sg"]

	want := model.DialectVariant{
		Preferred:    "姑妈",
		Alternatives: []string{"姑姐", "大姑"},
		Confidence:   model.ConfidenceHigh,
		Sources: []model.Source{
			{URL: "https://example.com/a", Title: "A", Accessed: "2026-02-16", Notes: "note"},
		},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("normalized variant mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, NormalizeStats{Concepts: 1, Variants: 1, SourcesDropped: 2, AlternativesDropped: 3}, stats)

	// input untouched
	assert.Len(t, in.Concepts["paternal_aunt_elder"].Variants["cantonese_sg"].Sources, 3)
}

func TestNormalize_Nil(t *testing.T) {
	out, stats := Normalize(nil)
	assert.Nil(t, out)
	assert.Zero(t, stats)
}

func TestWrite_FormatByExtension(t *testing.T) {
	data := &model.DialectData{Meta: model.DatasetMeta{Version: "1.0.0"}}

	var js bytes.Buffer
	require.NoError(t, Write(&js, "out.json", data))
	assert.Contains(t, js.String(), `"version": "1.0.0"`)

	var ym bytes.Buffer
	require.NoError(t, Write(&ym, "out.yaml", data))
	assert.Contains(t, ym.String(), "version: 1.0.0")
}
