// Package dataset loads the step catalog, dialect, romanization and lexicon
// datasets from the embedded defaults, local files or remote URLs.
package dataset

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kkennyy/call-what-ah/internal/model"
)

//go:embed data/*.yaml
var embedded embed.FS

// Embedded file names, used when a location is empty
const (
	StepsFile        = "steps.yaml"
	DialectsFile     = "dialect_variants.yaml"
	RomanizationFile = "romanization.yaml"
	LexiconFile      = "lexicon.yaml"
)

// Bundle groups every dataset the engine reads
type Bundle struct {
	Steps        *model.StepCatalog
	Dialects     *model.DialectData
	Romanization *model.RomanizationData
	Lexicon      *model.Lexicon
}

// Loader reads datasets. A nil fetcher disables remote locations.
type Loader struct {
	fetcher *Fetcher
	logger  *zap.Logger
}

// NewLoader creates a Loader
func NewLoader(fetcher *Fetcher, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fetcher: fetcher, logger: logger}
}

// Default loads the embedded datasets
func Default() (*Bundle, error) {
	return NewLoader(nil, nil).Load(context.Background(), model.DataConfig{})
}

// Load reads all four datasets named in cfg
func (l *Loader) Load(ctx context.Context, cfg model.DataConfig) (*Bundle, error) {
	steps, err := l.LoadSteps(ctx, cfg.Steps)
	if err != nil {
		return nil, err
	}
	dialects, err := l.LoadDialects(ctx, cfg.Dialects)
	if err != nil {
		return nil, err
	}
	roman, err := l.LoadRomanization(ctx, cfg.Romanization)
	if err != nil {
		return nil, err
	}
	lex, err := l.LoadLexicon(ctx, cfg.Lexicon)
	if err != nil {
		return nil, err
	}
	return &Bundle{Steps: steps, Dialects: dialects, Romanization: roman, Lexicon: lex}, nil
}

// LoadSteps reads and indexes the step catalog
func (l *Loader) LoadSteps(ctx context.Context, location string) (*model.StepCatalog, error) {
	var raw model.StepCatalog
	if err := l.decode(ctx, location, StepsFile, &raw); err != nil {
		return nil, fmt.Errorf("load steps: %w", err)
	}
	if err := validateSteps(raw.Steps); err != nil {
		return nil, fmt.Errorf("load steps: %w", err)
	}
	return model.NewStepCatalog(raw.Steps, raw.Numerals, raw.Connector), nil
}

// LoadDialects reads the dialect dataset
func (l *Loader) LoadDialects(ctx context.Context, location string) (*model.DialectData, error) {
	var data model.DialectData
	if err := l.decode(ctx, location, DialectsFile, &data); err != nil {
		return nil, fmt.Errorf("load dialects: %w", err)
	}
	if data.Concepts == nil {
		data.Concepts = map[string]*model.Concept{}
	}
	l.logger.Debug("dialect dataset loaded",
		zap.String("version", data.Meta.Version),
		zap.Int("concepts", len(data.Concepts)),
		zap.Int("dialects", len(data.Dialects)))
	return &data, nil
}

// LoadRomanization reads the romanization dataset
func (l *Loader) LoadRomanization(ctx context.Context, location string) (*model.RomanizationData, error) {
	var data model.RomanizationData
	if err := l.decode(ctx, location, RomanizationFile, &data); err != nil {
		return nil, fmt.Errorf("load romanization: %w", err)
	}
	return &data, nil
}

// LoadLexicon reads the static baseline lexicon
func (l *Loader) LoadLexicon(ctx context.Context, location string) (*model.Lexicon, error) {
	var lex model.Lexicon
	if err := l.decode(ctx, location, LexiconFile, &lex); err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	return &lex, nil
}

func (l *Loader) decode(ctx context.Context, location, embeddedName string, out interface{}) error {
	body, name, err := l.read(ctx, location, embeddedName)
	if err != nil {
		return err
	}
	if err := Unmarshal(name, body, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (l *Loader) read(ctx context.Context, location, embeddedName string) ([]byte, string, error) {
	switch {
	case location == "":
		body, err := embedded.ReadFile("data/" + embeddedName)
		if err != nil {
			return nil, "", fmt.Errorf("read embedded %s: %w", embeddedName, err)
		}
		return body, embeddedName, nil

	case strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://"):
		if l.fetcher == nil {
			return nil, "", fmt.Errorf("remote dataset %s: no fetcher configured", location)
		}
		l.logger.Info("fetching dataset", zap.String("url", location))
		result, err := l.fetcher.FetchWithRetry(ctx, location)
		if err != nil {
			return nil, "", fmt.Errorf("fetch %s: %w", location, err)
		}
		name := location
		if strings.Contains(result.ContentType, "json") {
			name = location + ".json"
		}
		return result.Body, name, nil

	default:
		body, err := os.ReadFile(location)
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", location, err)
		}
		return body, location, nil
	}
}

// Unmarshal decodes JSON when name ends in .json, YAML otherwise
func Unmarshal(name string, body []byte, out interface{}) error {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return json.Unmarshal(body, out)
	}
	return yaml.Unmarshal(body, out)
}

func validateSteps(steps []model.Step) error {
	if len(steps) == 0 {
		return fmt.Errorf("catalog has no steps")
	}
	seen := make(map[string]bool, len(steps))
	for i, s := range steps {
		if s.ID == "" || s.Token == "" {
			return fmt.Errorf("step %d: id and selector are required", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("step %d: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}
