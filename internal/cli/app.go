package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kkennyy/call-what-ah/internal/dataset"
	"github.com/kkennyy/call-what-ah/internal/lexicon"
	"github.com/kkennyy/call-what-ah/internal/model"
	"github.com/kkennyy/call-what-ah/internal/pipeline"
	"github.com/kkennyy/call-what-ah/internal/prefs"
	"github.com/kkennyy/call-what-ah/internal/romanize"
)

// stateFlags are the flags every resolving command shares
type stateFlags struct {
	dialect string
	sex     string
	reverse bool
	facts   []string
	format  string
}

func (f *stateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.dialect, "dialect", "d", "", "dialect id (default: saved preference, then defaults.dialect)")
	cmd.Flags().StringVar(&f.sex, "sex", "", "your sex: male, female or unknown (default: defaults.sex)")
	cmd.Flags().BoolVarP(&f.reverse, "reverse", "r", false, "what they call me instead of what I call them")
	cmd.Flags().StringArrayVar(&f.facts, "fact", nil, "known fact as key=value (repeatable), e.g. cousinAgeRelative=older")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: text, json or markdown (default: output.format)")
}

// outputFormat returns the flag value or the configured format
func (f *stateFlags) outputFormat() string {
	if f.format != "" {
		return f.format
	}
	return config.Output.Format
}

// state builds the application state for chainSpec, layering flags over
// saved preferences over configured defaults
func (f *stateFlags) state(chainSpec string, p *prefs.Prefs) (model.State, error) {
	chain, err := model.ParseChain(chainSpec)
	if err != nil {
		return model.State{}, err
	}
	state, err := defaultState(p)
	if err != nil {
		return model.State{}, err
	}
	state.Chain = chain

	if f.dialect != "" {
		state.DialectID = f.dialect
	}
	if f.sex != "" {
		if state.Sex, err = model.ParseSex(f.sex); err != nil {
			return model.State{}, err
		}
	}
	state.Reverse = f.reverse

	for _, raw := range f.facts {
		k, v, err := model.ParseFact(raw)
		if err != nil {
			return model.State{}, err
		}
		state.Facts = state.Facts.With(k, v)
	}
	return state, nil
}

// defaultState is the state before any flags: saved preferences over
// configured defaults, with an empty chain
func defaultState(p *prefs.Prefs) (model.State, error) {
	state := model.NewState(nil)
	state.DialectID = config.Defaults.Dialect
	if p != nil {
		if p.Dialect != "" {
			state.DialectID = p.Dialect
		}
		state.Overrides = p.Overrides.Clone()
	}
	sex, err := model.ParseSex(config.Defaults.Sex)
	if err != nil {
		return model.State{}, err
	}
	state.Sex = sex
	return state, nil
}

// commandLine renders state as the resolve invocation that reproduces it
func commandLine(state model.State) string {
	parts := []string{"cwah", "resolve", state.Chain.String()}
	if state.DialectID != "" && state.DialectID != config.Defaults.Dialect {
		parts = append(parts, "--dialect", state.DialectID)
	}
	if state.Sex != model.SexUnknown {
		parts = append(parts, "--sex", state.Sex.String())
	}
	if state.Reverse {
		parts = append(parts, "--reverse")
	}
	keys := make([]string, 0, len(state.Facts))
	for k := range state.Facts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, "--fact", k+"="+state.Facts[k])
	}
	return strings.Join(parts, " ")
}

// prefsStore opens the configured preferences file
func prefsStore() (*prefs.Store, error) {
	path := config.Prefs.Path
	if path == "" {
		p, err := prefs.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return prefs.NewStore(path), nil
}

// loadPrefs reads the saved preferences
func loadPrefs() (*prefs.Prefs, error) {
	store, err := prefsStore()
	if err != nil {
		return nil, err
	}
	return store.Load()
}

// newLoader creates a dataset loader that can fetch remote locations
func newLoader() *dataset.Loader {
	fetcher := dataset.NewFetcher(
		config.HTTP.Timeout,
		config.HTTP.UserAgent,
		config.HTTP.MaxBodyBytes,
		config.HTTP.HTTPProxy,
		config.HTTP.HTTPSProxy,
		config.HTTP.NoProxy,
	)
	return dataset.NewLoader(fetcher, logger)
}

// loadBundle reads the configured datasets
func loadBundle(ctx context.Context) (*dataset.Bundle, error) {
	bundle, err := newLoader().Load(ctx, config.Data)
	if err != nil {
		return nil, fmt.Errorf("load datasets: %w", err)
	}
	return bundle, nil
}

// newEngine loads the datasets and wires the baseline provider
func newEngine(ctx context.Context) (*pipeline.Engine, error) {
	bundle, err := loadBundle(ctx)
	if err != nil {
		return nil, err
	}

	provider, err := lexicon.NewProvider(config.LLM, bundle.Lexicon)
	if err != nil {
		return nil, fmt.Errorf("baseline provider: %w", err)
	}

	maxEntries := config.Cache.MaxEntries
	if !config.Cache.Enabled {
		maxEntries = 1
	}
	memo := lexicon.NewMemo(provider, maxEntries, config.Cache.TTL, logger)

	logger.Debug("engine ready",
		zap.String("baseline", provider.Name()),
		zap.Int("concepts", len(bundle.Dialects.Concepts)),
		zap.Int("dialects", len(bundle.Dialects.Dialects)))

	return pipeline.NewEngine(bundle, memo, romanize.NewGoPinyin(), logger), nil
}
