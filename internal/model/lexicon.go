package model

// LexiconEntry lists baseline Mandarin terms for one chain text. An empty
// Sex matches any sex.
type LexiconEntry struct {
	Text    string   `json:"text" yaml:"text"`
	Reverse bool     `json:"reverse,omitempty" yaml:"reverse,omitempty"`
	Sex     string   `json:"sex,omitempty" yaml:"sex,omitempty"`
	Terms   []string `json:"terms" yaml:"terms"`
}

// Lexicon is a static baseline term table
type Lexicon struct {
	Entries []LexiconEntry `json:"entries" yaml:"entries"`
}
