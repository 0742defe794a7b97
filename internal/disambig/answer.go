package disambig

import (
	"fmt"

	"github.com/kkennyy/call-what-ah/internal/model"
)

// Apply returns the state that results from answering q with opt.
// The input state is never modified.
func Apply(state model.State, q model.Question, opt model.Option) (model.State, error) {
	next := state
	switch q.Type {
	case model.QuestionReplaceStep:
		if q.StepIndex < 0 || q.StepIndex >= len(state.Chain) {
			return state, fmt.Errorf("question %s: step index %d out of range: %w", q.ID, q.StepIndex, model.ErrInvalidOption)
		}
		if opt.StepID == "" {
			return state, fmt.Errorf("question %s: option %q has no step: %w", q.ID, opt.Label, model.ErrInvalidOption)
		}
		next.Chain = state.Chain.Clone()
		next.Chain[q.StepIndex] = model.ChainEntry{StepID: opt.StepID}
		next.Facts = state.Facts.WithoutPrefix(model.StepFactPrefix(q.StepIndex))

	case model.QuestionSetSex:
		if opt.Sex == nil {
			return state, fmt.Errorf("question %s: option %q has no sex: %w", q.ID, opt.Label, model.ErrInvalidOption)
		}
		next.Sex = *opt.Sex

	case model.QuestionSetFact:
		if q.FactKey == "" || opt.Value == "" {
			return state, fmt.Errorf("question %s: missing fact key or value: %w", q.ID, model.ErrInvalidOption)
		}
		next.Facts = state.Facts.With(q.FactKey, opt.Value)

	default:
		return state, fmt.Errorf("question %s: unknown type %q: %w", q.ID, q.Type, model.ErrUnknownQuestion)
	}
	return next, nil
}

// ApplyIndex answers q with its option at index
func ApplyIndex(state model.State, q model.Question, index int) (model.State, error) {
	if index < 0 || index >= len(q.Options) {
		return state, fmt.Errorf("question %s: option %d of %d: %w", q.ID, index, len(q.Options), model.ErrInvalidOption)
	}
	return Apply(state, q, q.Options[index])
}

// Change reverts a resolved set-fact question so it is asked again
func Change(state model.State, q model.Question) model.State {
	if q.Type != model.QuestionSetFact || q.FactKey == "" {
		return state
	}
	next := state
	next.Facts = state.Facts.Without(q.FactKey)
	return next
}
