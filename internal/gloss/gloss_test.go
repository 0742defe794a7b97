package gloss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkennyy/call-what-ah/internal/dataset"
	"github.com/kkennyy/call-what-ah/internal/model"
)

func testData() *model.DialectData {
	return &model.DialectData{Concepts: map[string]*model.Concept{
		"paternal_uncle_elder": {
			Gloss:     "father's older brother",
			Canonical: []string{"伯父", "伯伯"},
			Variants: map[string]model.DialectVariant{
				"hokkien_sg": {Preferred: "阿伯", Alternatives: []string{"伯父"}},
			},
		},
		"elder_man": {
			Gloss:     "Elderly man (polite)",
			Canonical: []string{"阿伯"},
		},
		"maternal_uncle": {
			Gloss:     "mother's brother",
			Canonical: []string{"舅舅"},
		},
		"no_gloss": {
			Canonical: []string{"某某"},
		},
	}}
}

func TestBuildIndex(t *testing.T) {
	ix := BuildIndex(testData())

	assert.Equal(t, []string{"father's older brother"}, ix.Lookup("伯父"))
	assert.Equal(t, []string{"Elderly man (polite)", "father's older brother"}, ix.Lookup("阿伯"))
	assert.Nil(t, ix.Lookup("某某"))
	assert.Empty(t, BuildIndex(nil))
}

func TestResolve_Priority(t *testing.T) {
	data := testData()
	ix := BuildIndex(data)

	tests := []struct {
		name string
		in   Input
		want string
	}{
		{
			name: "concept gloss when term belongs to concept",
			in:   Input{Term: "阿伯", Concept: data.Concept("paternal_uncle_elder"), Index: ix},
			want: "father's older brother",
		},
		{
			name: "ambiguous index gloss when term is foreign to concept",
			in:   Input{Term: "阿伯", Concept: data.Concept("maternal_uncle"), Index: ix},
			want: "Elderly man (polite) / father's older brother",
		},
		{
			name: "single index gloss",
			in:   Input{Term: "舅舅", Index: ix},
			want: "mother's brother",
		},
		{
			name: "selector gloss",
			in:   Input{Term: "堂哥", Selector: "f,ob,s&o", Index: ix},
			want: "father's older brother's son (older)",
		},
		{
			name: "reverse selector gloss",
			in:   Input{Term: "侄子", Selector: "f,ob", ReverseSelector: "lb,s", Reverse: true, Index: ix},
			want: "younger brother's son",
		},
		{
			name: "empty term",
			in:   Input{Selector: "f"},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.in))
		})
	}
}

func TestBuildIndex_EmbeddedDataset(t *testing.T) {
	b, err := dataset.Default()
	require.NoError(t, err)

	ix := BuildIndex(b.Dialects)
	assert.Equal(t, []string{"father's older sister"}, ix.Lookup("大姑")[:1])
	assert.Contains(t, ix.Lookup("姑丈"), "father's older sister's spouse")
}

func TestSortGlosses_IgnoresCase(t *testing.T) {
	assert.Equal(t, []string{"apple", "Banana", "cherry"}, sortGlosses([]string{"cherry", "Banana", "apple", "apple"}))
}
