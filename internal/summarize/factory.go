package summarize

import "fmt"

// Options selects and configures a provider.
type Options struct {
	Provider  string // "static", "ollama" or "openai"
	Model     string
	OllamaURL string
	APIKey    string
}

// New creates the configured provider. An empty provider name selects
// the deterministic static summarizer.
func New(opts Options) (Summarizer, error) {
	switch opts.Provider {
	case "", "static":
		return Static{}, nil
	case "ollama":
		return NewOllama(opts.OllamaURL, opts.Model)
	case "openai":
		return NewOpenAI(opts.APIKey, opts.Model)
	}
	return nil, fmt.Errorf("unknown summarizer provider: %s", opts.Provider)
}
