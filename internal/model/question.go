package model

// QuestionType tags which state transition an answer performs
type QuestionType string

const (
	QuestionReplaceStep QuestionType = "replace_step"
	QuestionSetSex      QuestionType = "set_sex"
	QuestionSetFact     QuestionType = "set_fact"
)

// Option is one answer to a question. Only the field matching the
// question type is meaningful.
type Option struct {
	Label  string `json:"label"`
	StepID string `json:"step_id,omitempty"`
	Sex    *Sex   `json:"sex,omitempty"`
	Value  string `json:"value,omitempty"`
}

// SexOption builds a set-sex option
func SexOption(label string, sex Sex) Option {
	return Option{Label: label, Sex: &sex}
}

// Question asks the user for one missing fact
type Question struct {
	ID        string       `json:"id"`
	Prompt    string       `json:"prompt"`
	Type      QuestionType `json:"type"`
	StepIndex int          `json:"step_index"`
	FactKey   string       `json:"fact_key,omitempty"`
	Options   []Option     `json:"options"`

	Resolved     bool   `json:"resolved,omitempty"`
	CurrentValue string `json:"current_value,omitempty"`
	CurrentLabel string `json:"current_label,omitempty"`
}

// State is the application state the disambiguation reducer transforms
type State struct {
	Chain     Chain     `json:"chain" yaml:"chain"`
	Facts     Facts     `json:"facts,omitempty" yaml:"facts,omitempty"`
	Sex       Sex       `json:"sex" yaml:"sex"`
	Reverse   bool      `json:"reverse" yaml:"reverse"`
	DialectID string    `json:"dialect_id" yaml:"dialect_id"`
	Overrides Overrides `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// NewState returns a state for chain with unknown sex and the standard dialect
func NewState(chain Chain) State {
	return State{
		Chain:     chain,
		Facts:     Facts{},
		Sex:       SexUnknown,
		DialectID: DialectStandard,
		Overrides: Overrides{},
	}
}
