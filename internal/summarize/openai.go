package summarize

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pders01/gitcontext/internal/models"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAI summarizes through the OpenAI chat completion API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI-backed summarizer.
func NewOpenAI(apiKey, model string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

func (o *OpenAI) Summarize(decisions []string, alternatives []models.Alternative, logs []models.OtaLog) (Summary, error) {
	prompt := buildPrompt(decisions, alternatives, logs)

	resp, err := o.client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.3,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You summarize AI development context. Respond with JSON only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return Summary{}, fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Summary{}, fmt.Errorf("openai completion: empty response")
	}

	return parseResponse(resp.Choices[0].Message.Content)
}
