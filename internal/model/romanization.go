package model

// RomanizationSystem names a dialect's romanization scheme
type RomanizationSystem struct {
	Name       string `json:"name" yaml:"name"`
	ToneFormat string `json:"toneFormat,omitempty" yaml:"toneFormat,omitempty"`
}

// RomanizationOverride is an explicit romanization for one term in one dialect
type RomanizationOverride struct {
	Roman        string     `json:"roman" yaml:"roman"`
	Confidence   Confidence `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	SourceBacked bool       `json:"sourceBacked,omitempty" yaml:"sourceBacked,omitempty"`
	Method       string     `json:"method,omitempty" yaml:"method,omitempty"`
}

// RomanizationData is the romanization dataset snapshot
type RomanizationData struct {
	Meta             DatasetMeta                                `json:"meta" yaml:"meta"`
	Systems          map[string]RomanizationSystem              `json:"systems" yaml:"systems"`
	Overrides        map[string]map[string]RomanizationOverride `json:"overrides" yaml:"overrides"`
	MandarinFallback map[string]string                          `json:"mandarinFallback" yaml:"mandarinFallback"`
}

// Override returns the explicit romanization of term in a dialect
func (d *RomanizationData) Override(dialectID, term string) (RomanizationOverride, bool) {
	if d == nil {
		return RomanizationOverride{}, false
	}
	o, ok := d.Overrides[dialectID][term]
	return o, ok
}

// Romanization is the romanized rendering of one recommended or acceptable term
type Romanization struct {
	Text       string     `json:"text"`
	SystemName string     `json:"system_name"`
	IsFallback bool       `json:"is_fallback"`
	Confidence Confidence `json:"confidence"`
}
