package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkennyy/call-what-ah/internal/model"
)

func TestStore_LoadMissing(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "none", "prefs.yaml"))

	p, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, p.Dialect)
	assert.NotNil(t, p.Overrides)
}

func TestStore_PinAndDialect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")
	s := NewStore(path)

	_, err := s.SetDialect("hokkien_sg")
	require.NoError(t, err)
	_, err = s.Pin("paternal_uncle_elder", model.Override{Term: "阿伯", SourceDialectID: "hokkien_sg"})
	require.NoError(t, err)
	_, err = s.Pin("maternal_uncle", model.Override{Term: "舅父"})
	require.NoError(t, err)

	p, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "hokkien_sg", p.Dialect)
	assert.Equal(t, model.Overrides{
		"paternal_uncle_elder": {Term: "阿伯", SourceDialectID: "hokkien_sg"},
		"maternal_uncle":       {Term: "舅父"},
	}, p.Overrides)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "maternal_uncle: 舅父")

	p, err = s.Pin("maternal_uncle", model.Override{})
	require.NoError(t, err)
	assert.NotContains(t, p.Overrides, "maternal_uncle")
}

func TestStore_LoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("overrides: [1, 2"), 0o644))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}
