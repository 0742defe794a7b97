package romanize

import (
	"strings"

	"github.com/mozillazg/go-pinyin"
)

// GoPinyin converts Han characters to tone-marked pinyin
type GoPinyin struct {
	args pinyin.Args
}

// NewGoPinyin creates a converter emitting tone marks (gū mā)
func NewGoPinyin() *GoPinyin {
	args := pinyin.NewArgs()
	args.Style = pinyin.Tone
	return &GoPinyin{args: args}
}

// Syllables returns one pinyin syllable per convertible character
func (g *GoPinyin) Syllables(term string) ([]string, error) {
	return pinyin.LazyPinyin(term, g.args), nil
}

// Text returns the space-joined reading
func (g *GoPinyin) Text(term string) (string, error) {
	return strings.Join(pinyin.LazyPinyin(term, g.args), " "), nil
}
