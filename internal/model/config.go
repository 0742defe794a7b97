package model

import (
	"fmt"
	"time"
)

// Config holds all call-what-ah configuration
type Config struct {
	Data         DataConfig        `yaml:"data" mapstructure:"data"`
	Defaults     DefaultsConfig    `yaml:"defaults" mapstructure:"defaults"`
	Cache        CacheConfig       `yaml:"cache" mapstructure:"cache"`
	HTTP         HTTPConfig        `yaml:"http" mapstructure:"http"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Authority    AuthorityConfig   `yaml:"authority" mapstructure:"authority"`
	LLM          LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Output       OutputConfig      `yaml:"output" mapstructure:"output"`
	Prefs        PrefsConfig       `yaml:"prefs" mapstructure:"prefs"`
}

// DataConfig locates the datasets. Empty paths use the embedded copies;
// http(s) URLs are fetched.
type DataConfig struct {
	Steps        string `yaml:"steps" mapstructure:"steps"`
	Dialects     string `yaml:"dialects" mapstructure:"dialects"`
	Romanization string `yaml:"romanization" mapstructure:"romanization"`
	Lexicon      string `yaml:"lexicon" mapstructure:"lexicon"`
}

// DefaultsConfig holds resolution defaults
type DefaultsConfig struct {
	Dialect string `yaml:"dialect" mapstructure:"dialect"`
	Sex     string `yaml:"sex" mapstructure:"sex"`
}

// CacheConfig configures the baseline lexicon memo and link check cache
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	MaxEntries int           `yaml:"max_entries" mapstructure:"max_entries"`
	TTL        time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Dir        string        `yaml:"dir" mapstructure:"dir"`
	DiskTTL    time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// HTTPConfig configures dataset fetches and citation link checks
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// ConcurrencyConfig sizes worker pools
type ConcurrencyConfig struct {
	Workers           int `yaml:"workers" mapstructure:"workers"`
	ValidationWorkers int `yaml:"validation_workers" mapstructure:"validation_workers"`
}

// RateLimitConfig configures per-host request rates
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// AuthorityConfig maps citation hosts to authority tiers
type AuthorityConfig struct {
	PrimaryDomains   []string          `yaml:"primary_domains" mapstructure:"primary_domains"`
	SecondaryDomains []string          `yaml:"secondary_domains" mapstructure:"secondary_domains"`
	DomainMap        map[string]string `yaml:"domain_map,omitempty" mapstructure:"domain_map"`
	PathPatterns     []PathPattern     `yaml:"path_patterns,omitempty" mapstructure:"path_patterns"`
}

// PathPattern assigns a tier to URLs whose path matches Pattern
type PathPattern struct {
	Pattern string `yaml:"pattern" mapstructure:"pattern"`
	Tier    string `yaml:"tier" mapstructure:"tier"`
}

// LLMConfig configures the optional model-backed baseline lexicon
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai", "anthropic", "ollama" or "" (static table)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Format  string `yaml:"format" mapstructure:"format"` // text, json, markdown
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// PrefsConfig locates the preferences file
type PrefsConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Dialect: DialectStandard,
			Sex:     "unknown",
		},
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 500,
			TTL:        time.Hour,
			DiskTTL:    7 * 24 * time.Hour,
		},
		HTTP: HTTPConfig{
			Timeout:       15 * time.Second,
			UserAgent:     "call-what-ah/0.3 (+https://github.com/kkennyy/call-what-ah)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers:           4,
			ValidationWorkers: 8,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 2,
			BurstSize:         2,
		},
		Authority: AuthorityConfig{
			PrimaryDomains: []string{
				"humanum.arts.cuhk.edu.hk",
				"sutian.moe.edu.tw",
				"hakkadict.moe.edu.tw",
				"dict.revised.moe.edu.tw",
			},
			SecondaryDomains: []string{
				"singaporeccc.org.sg",
				"wikipedia.org",
				"wiktionary.org",
				"britannica.com",
			},
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 200,
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries must be >= 0, got %d", c.Cache.MaxEntries)
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %v", c.HTTP.Timeout)
	}
	if c.Concurrency.Workers < 0 || c.Concurrency.ValidationWorkers < 0 {
		return fmt.Errorf("concurrency workers must be >= 0")
	}
	if c.RateLimiting.RequestsPerSecond < 0 {
		return fmt.Errorf("rate_limiting.requests_per_second must be >= 0, got %v", c.RateLimiting.RequestsPerSecond)
	}
	switch c.Output.Format {
	case "", "text", "json", "markdown":
	default:
		return fmt.Errorf("output.format must be text, json or markdown, got %q", c.Output.Format)
	}
	switch c.LLM.Provider {
	case "", "openai", "anthropic", "claude", "ollama":
	default:
		return fmt.Errorf("llm.provider must be openai, anthropic, ollama or empty, got %q", c.LLM.Provider)
	}
	if _, err := ParseSex(c.Defaults.Sex); err != nil {
		return fmt.Errorf("defaults.sex: %w", err)
	}
	return nil
}
