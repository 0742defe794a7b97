package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOverride_UnmarshalYAML(t *testing.T) {
	doc := `
paternal_aunt_elder: 姑姐
maternal_uncle:
  term: 阿舅
  sourceDialectId: hokkien_sg
`
	var got Overrides
	require.NoError(t, yaml.Unmarshal([]byte(doc), &got))

	assert.Equal(t, Override{Term: "姑姐"}, got["paternal_aunt_elder"])
	assert.Equal(t, Override{Term: "阿舅", SourceDialectID: "hokkien_sg"}, got["maternal_uncle"])
}

func TestOverride_MarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(Overrides{"paternal_aunt_elder": {Term: "姑姐"}})
	require.NoError(t, err)
	assert.Equal(t, "paternal_aunt_elder: 姑姐\n", string(out))

	var back Overrides
	out, err = yaml.Marshal(Overrides{"maternal_uncle": {Term: "阿舅", SourceDialectID: "hokkien_sg"}})
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, "hokkien_sg", back["maternal_uncle"].SourceDialectID)
}

func TestOverride_UnmarshalJSON(t *testing.T) {
	var got Overrides
	require.NoError(t, json.Unmarshal([]byte(`{"a":"姑姐","b":{"term":"阿舅","sourceDialectId":"hokkien_sg"}}`), &got))
	assert.Equal(t, "姑姐", got["a"].Term)
	assert.Equal(t, "hokkien_sg", got["b"].SourceDialectID)

	assert.Error(t, json.Unmarshal([]byte(`{"a":42}`), &got))
}

func TestDialectData_NilSafe(t *testing.T) {
	var data *DialectData
	assert.Nil(t, data.Concept("x"))
	assert.False(t, data.HasDialect("custom"))

	var concept *Concept
	_, ok := concept.Variant(DialectStandard)
	assert.False(t, ok)
}
