// Package pipeline runs one resolution round: chain text, baseline lookup,
// concept resolution, term selection, questions, glosses and romanization.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kkennyy/call-what-ah/internal/concept"
	"github.com/kkennyy/call-what-ah/internal/dataset"
	"github.com/kkennyy/call-what-ah/internal/disambig"
	"github.com/kkennyy/call-what-ah/internal/gloss"
	"github.com/kkennyy/call-what-ah/internal/lexicon"
	"github.com/kkennyy/call-what-ah/internal/model"
	"github.com/kkennyy/call-what-ah/internal/romanize"
	"github.com/kkennyy/call-what-ah/internal/selector"
	"github.com/kkennyy/call-what-ah/internal/term"
)

// Baseline supplies baseline Mandarin terms. Lookups never fail.
type Baseline interface {
	Terms(ctx context.Context, q lexicon.Query) []string
}

// Engine resolves application states against a loaded dataset bundle
type Engine struct {
	bundle   *dataset.Bundle
	baseline Baseline
	glosses  gloss.Index
	pinyin   romanize.Converter
	logger   *zap.Logger
}

// Result is everything one resolution round produces
type Result struct {
	State         model.State                    `json:"state"`
	ChainText     string                         `json:"chain_text"`
	Baseline      []string                       `json:"baseline"`
	Resolution    model.ConceptResolution        `json:"resolution"`
	Concept       *model.Concept                 `json:"concept"`
	KnownConcept  bool                           `json:"known_concept"`
	Selection     model.Selection                `json:"selection"`
	Acceptable    []string                       `json:"acceptable"`
	Questions     []model.Question               `json:"questions"`
	Glosses       map[string]string              `json:"glosses"`
	Romanizations map[string]*model.Romanization `json:"romanizations,omitempty"`
}

// NewEngine creates an engine. A nil baseline uses the bundle's static
// lexicon; a nil converter skips live pinyin and relies on the dataset's
// fallback readings.
func NewEngine(bundle *dataset.Bundle, baseline Baseline, pinyin romanize.Converter, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if baseline == nil {
		baseline = lexicon.NewMemo(lexicon.NewStaticProvider(bundle.Lexicon), 0, 0, logger)
	}
	return &Engine{
		bundle:   bundle,
		baseline: baseline,
		glosses:  gloss.BuildIndex(bundle.Dialects),
		pinyin:   pinyin,
		logger:   logger,
	}
}

// Bundle returns the engine's datasets
func (e *Engine) Bundle() *dataset.Bundle {
	return e.bundle
}

// Resolve runs one round for state. Only structural chain errors fail.
func (e *Engine) Resolve(ctx context.Context, state model.State) (*Result, error) {
	if state.DialectID == "" {
		state.DialectID = model.DialectStandard
	}
	if state.Facts == nil {
		state.Facts = model.Facts{}
	}

	text, err := selector.ChainText(state.Chain, e.bundle.Steps)
	if err != nil {
		return nil, fmt.Errorf("chain text: %w", err)
	}

	baseline := e.baseline.Terms(ctx, lexicon.Query{Text: text, Sex: state.Sex, Reverse: state.Reverse})

	res, err := concept.Resolve(concept.Input{
		Chain:   state.Chain,
		Catalog: e.bundle.Steps,
		Sex:     state.Sex,
		Reverse: state.Reverse,
		Data:    e.bundle.Dialects,
		Facts:   state.Facts,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve concept: %w", err)
	}

	c, known := concept.Get(e.bundle.Dialects, res.ConceptID, baseline)
	if !known {
		e.logger.Debug("concept not in dataset, using baseline",
			zap.String("concept", res.ConceptID),
			zap.Int("baseline", len(baseline)))
	}

	sel := term.Select(term.Input{
		ConceptID:          res.ConceptID,
		DialectID:          state.DialectID,
		Data:               e.bundle.Dialects,
		Baseline:           baseline,
		Overrides:          state.Overrides,
		RequiresResolution: len(res.MissingFacts) > 0,
	})

	result := &Result{
		State:        state,
		ChainText:    text,
		Baseline:     baseline,
		Resolution:   res,
		Concept:      c,
		KnownConcept: known,
		Selection:    sel,
		Acceptable:   term.Acceptable(sel, baseline),
		Questions: disambig.Questions(disambig.Input{
			Chain:      state.Chain,
			Catalog:    e.bundle.Steps,
			Sex:        state.Sex,
			Resolution: res,
			Facts:      state.Facts,
		}),
	}
	result.Glosses = e.glossTerms(result)
	result.Romanizations = e.romanizeTerms(result)

	e.logger.Debug("resolved",
		zap.String("chain", state.Chain.String()),
		zap.String("concept", res.ConceptID),
		zap.String("dialect", state.DialectID),
		zap.String("recommended", sel.Recommended),
		zap.Strings("missing", res.MissingFacts))

	return result, nil
}

// Answer applies option optionIndex of question questionID to state.
// The question must be one a fresh resolution of state would ask.
func (e *Engine) Answer(ctx context.Context, state model.State, questionID string, optionIndex int) (model.State, error) {
	result, err := e.Resolve(ctx, state)
	if err != nil {
		return state, err
	}
	q, ok := disambig.Find(result.Questions, questionID)
	if !ok {
		return state, fmt.Errorf("question %q: %w", questionID, model.ErrUnknownQuestion)
	}
	return disambig.ApplyIndex(state, q, optionIndex)
}

// Change reopens a resolved question
func (e *Engine) Change(ctx context.Context, state model.State, questionID string) (model.State, error) {
	result, err := e.Resolve(ctx, state)
	if err != nil {
		return state, err
	}
	q, ok := disambig.Find(result.Questions, questionID)
	if !ok || !q.Resolved {
		return state, fmt.Errorf("question %q: %w", questionID, model.ErrUnknownQuestion)
	}
	return disambig.Change(state, q), nil
}

// displayedTerms lists the recommendation followed by acceptable terms
func displayedTerms(r *Result) []string {
	terms := make([]string, 0, len(r.Acceptable)+2)
	if r.Selection.Recommended != "" {
		terms = append(terms, r.Selection.Recommended)
	} else if r.Selection.StandardPreferred != "" {
		terms = append(terms, r.Selection.StandardPreferred)
	}
	for _, t := range r.Acceptable {
		if t != "" && t != r.Selection.StandardPreferred {
			terms = append(terms, t)
		}
	}
	return terms
}

// glossTerms glosses the displayed terms. A synthesized fallback concept is
// never a gloss source; unmatched terms are glossed from the selector.
func (e *Engine) glossTerms(r *Result) map[string]string {
	var known *model.Concept
	if r.KnownConcept {
		known = r.Concept
	}
	out := make(map[string]string)
	for _, t := range displayedTerms(r) {
		out[t] = gloss.Resolve(gloss.Input{
			Term:            t,
			Concept:         known,
			Selector:        r.Resolution.Selector,
			ReverseSelector: r.Resolution.ReverseSelector,
			Reverse:         r.State.Reverse,
			Index:           e.glosses,
		})
	}
	return out
}

func (e *Engine) romanizeTerms(r *Result) map[string]*model.Romanization {
	dialectID := r.State.DialectID
	if dialectID == model.DialectCustom {
		dialectID = r.Selection.CustomSourceDialectID
	}
	if dialectID == "" || dialectID == model.DialectStandard || e.bundle.Romanization == nil {
		return nil
	}

	out := make(map[string]*model.Romanization)
	for _, t := range displayedTerms(r) {
		if rom := romanize.Dialect(t, dialectID, e.bundle.Romanization, romanize.MandarinPinyin(t, e.pinyin)); rom != nil {
			out[t] = rom
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
