package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *StepCatalog {
	return NewStepCatalog([]Step{
		{ID: "father", Token: "f", Label: "Father", TextToken: "爸爸"},
		{ID: "olderBrother", Token: "ob", Label: "Older brother", Rankable: true, TextToken: "哥哥"},
		{ID: "son", Token: "s", Label: "Son", TextToken: "儿子"},
	}, map[string]string{"1": "大", "2": "二"}, "的")
}

func TestParseChain(t *testing.T) {
	tests := []struct {
		desc string
		spec string
		want Chain
	}{
		{desc: "single step", spec: "father", want: Chain{{StepID: "father"}}},
		{desc: "ranked step", spec: "father, olderBrother:2 ,son", want: Chain{{StepID: "father"}, {StepID: "olderBrother", Rank: 2}, {StepID: "son"}}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := ParseChain(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChain_Errors(t *testing.T) {
	_, err := ParseChain("  ")
	assert.ErrorIs(t, err, ErrEmptyChain)

	_, err = ParseChain("father,,son")
	assert.ErrorIs(t, err, ErrEmptyChain)

	_, err = ParseChain("olderBrother:11")
	assert.ErrorIs(t, err, ErrInvalidRank)

	_, err = ParseChain("olderBrother:x")
	var rankErr *InvalidRankError
	require.True(t, errors.As(err, &rankErr))
	assert.Equal(t, 0, rankErr.Index)
}

func TestChain_StringRoundTrip(t *testing.T) {
	chain := Chain{{StepID: "father"}, {StepID: "olderBrother", Rank: 3}}
	assert.Equal(t, "father,olderBrother:3", chain.String())

	parsed, err := ParseChain(chain.String())
	require.NoError(t, err)
	assert.Equal(t, chain, parsed)
}

func TestChain_Validate(t *testing.T) {
	catalog := testCatalog()

	require.NoError(t, NewChain("father", "olderBrother").Validate(catalog))
	assert.ErrorIs(t, Chain{}.Validate(catalog), ErrEmptyChain)

	err := NewChain("father", "uncle").Validate(catalog)
	require.ErrorIs(t, err, ErrUnknownStep)
	var stepErr *UnknownStepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, 1, stepErr.Index)
	assert.Equal(t, "uncle", stepErr.StepID)
	assert.Contains(t, err.Error(), "chain entry 2")
}

func TestStepCatalog_Lookup(t *testing.T) {
	catalog := testCatalog()

	step, ok := catalog.Lookup("olderBrother")
	require.True(t, ok)
	assert.Equal(t, "ob", step.Token)

	step, ok = catalog.ByToken("s")
	require.True(t, ok)
	assert.Equal(t, "son", step.ID)

	_, ok = catalog.Lookup("nobody")
	assert.False(t, ok)

	numeral, ok := catalog.Numeral(2)
	require.True(t, ok)
	assert.Equal(t, "二", numeral)
	_, ok = catalog.Numeral(7)
	assert.False(t, ok)
}

func TestStepCatalog_LookupWithoutIndex(t *testing.T) {
	catalog := &StepCatalog{Steps: []Step{{ID: "father", Token: "f"}}}

	step, ok := catalog.Lookup("father")
	require.True(t, ok)
	assert.Equal(t, "f", step.Token)

	_, ok = catalog.ByToken("m")
	assert.False(t, ok)
}

func TestChain_Clone(t *testing.T) {
	chain := NewChain("father", "son")
	clone := chain.Clone()
	clone[0].StepID = "mother"
	assert.Equal(t, "father", chain[0].StepID)
}
