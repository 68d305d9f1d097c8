package summarize

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/pders01/gitcontext/internal/models"
)

const (
	// DefaultOllamaModel is the recommended local model.
	DefaultOllamaModel = "llama3"
	// DefaultOllamaURL is the default Ollama API endpoint.
	DefaultOllamaURL = "http://localhost:11434"
)

// Ollama summarizes with a local model through the Ollama API.
type Ollama struct {
	client *api.Client
	model  string
}

// NewOllama creates an Ollama-backed summarizer.
func NewOllama(rawURL, model string) (*Ollama, error) {
	if rawURL == "" {
		rawURL = DefaultOllamaURL
	}
	if model == "" {
		model = DefaultOllamaModel
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama url %q: %w", rawURL, err)
	}

	return &Ollama{
		client: api.NewClient(base, http.DefaultClient),
		model:  model,
	}, nil
}

// IsAvailable checks if Ollama is running and accessible.
func IsAvailable(rawURL string) bool {
	if rawURL == "" {
		rawURL = DefaultOllamaURL
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(rawURL)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

func (o *Ollama) Summarize(decisions []string, alternatives []models.Alternative, logs []models.OtaLog) (Summary, error) {
	prompt := buildPrompt(decisions, alternatives, logs)

	stream := false
	req := &api.GenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: &stream,
		Options: map[string]any{
			"temperature": 0.3,
		},
	}

	var response strings.Builder
	err := o.client.Generate(context.Background(), req, func(resp api.GenerateResponse) error {
		response.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("ollama generate: %w", err)
	}

	return parseResponse(response.String())
}
