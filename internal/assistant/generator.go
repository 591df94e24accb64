package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Generator produces text for a single prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.5-flash"

// Config configures the OpenAI-compatible chat completion endpoint
type Config struct {
	APIKey  string
	BaseURL string // empty uses the OpenAI default
	Model   string
	Timeout time.Duration
}

// OpenAIGenerator sends one user message to a chat completion endpoint
type OpenAIGenerator struct {
	client *openai.Client
	model  string
	hasKey bool
}

// NewOpenAIGenerator creates a generator from config
func NewOpenAIGenerator(cfg Config) *OpenAIGenerator {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(1),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	client := openai.NewClient(opts...)
	return &OpenAIGenerator{client: &client, model: model, hasKey: cfg.APIKey != ""}
}

// Generate returns the text of the first choice
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if !g.hasKey {
		return "", ErrMissingAPIKey
	}

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
