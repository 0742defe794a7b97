// Package prefs persists the user's dialect choice and pinned terms.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kkennyy/call-what-ah/internal/model"
)

// Prefs is the persisted preference document
type Prefs struct {
	Dialect   string          `yaml:"dialect,omitempty"`
	Overrides model.Overrides `yaml:"overrides,omitempty"`
}

// Store reads and writes Prefs at a fixed path
type Store struct {
	path string
}

// NewStore creates a store for path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns ~/.cwah/prefs.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".cwah", "prefs.yaml"), nil
}

// Path returns the store's file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the preferences. A missing file yields empty preferences.
func (s *Store) Load() (*Prefs, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &Prefs{Overrides: model.Overrides{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read prefs: %w", err)
	}

	p := &Prefs{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse prefs %s: %w", s.path, err)
	}
	if p.Overrides == nil {
		p.Overrides = model.Overrides{}
	}
	return p, nil
}

// Save writes the preferences, creating the parent directory
func (s *Store) Save(p *Prefs) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// Pin stores o as the override for conceptID. An empty term removes it.
func (s *Store) Pin(conceptID string, o model.Override) (*Prefs, error) {
	p, err := s.Load()
	if err != nil {
		return nil, err
	}
	next := p.Overrides.Clone()
	if o.Term == "" {
		delete(next, conceptID)
	} else {
		next[conceptID] = o
	}
	p.Overrides = next
	return p, s.Save(p)
}

// SetDialect stores the preferred dialect
func (s *Store) SetDialect(dialectID string) (*Prefs, error) {
	p, err := s.Load()
	if err != nil {
		return nil, err
	}
	p.Dialect = dialectID
	return p, s.Save(p)
}
