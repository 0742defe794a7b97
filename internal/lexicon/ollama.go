package lexicon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kkennyy/call-what-ah/internal/model"
)

// OllamaProvider asks a local Ollama model for baseline terms
type OllamaProvider struct {
	baseURL string
	client  *http.Client
	config  model.LLMConfig
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	System  string        `json:"system,omitempty"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllamaProvider creates a new Ollama-backed provider. The model must
// be named; there is no sensible default for local installs.
func NewOllamaProvider(config model.LLMConfig) (*OllamaProvider, error) {
	if config.Model == "" {
		return nil, fmt.Errorf("ollama model must be specified (e.g., qwen2.5:7b)")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &OllamaProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  newAPIClient(timeout),
		config:  config,
	}, nil
}

// Name returns the provider name
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Terms asks the local model for the Mandarin terms matching q
func (p *OllamaProvider) Terms(ctx context.Context, q Query) ([]string, error) {
	if strings.TrimSpace(q.Text) == "" {
		return []string{}, nil
	}

	req := ollamaRequest{
		Model:   p.config.Model,
		Prompt:  BuildPrompt(q),
		System:  systemPrompt,
		Stream:  false,
		Options: ollamaOptions{NumPredict: p.config.MaxTokens},
	}

	var resp ollamaResponse
	if err := postJSON(ctx, p.client, p.baseURL+"/api/generate", nil, req, &resp, decodeOllamaError); err != nil {
		return nil, fmt.Errorf("ollama API error: %w", err)
	}
	return parseTerms(resp.Response)
}

func decodeOllamaError(body []byte) string {
	var apiErr struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return ""
	}
	return apiErr.Error
}
