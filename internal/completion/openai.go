package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/utils"
)

const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderNone   = "none"

	defaultOpenAIModel = "gpt-4o-mini"
	defaultOllamaModel = "llama3.1"
)

// Config selects and configures the model provider.
type Config struct {
	Provider       string
	APIKey         string
	Model          string
	BaseURL        string
	OllamaEndpoint string
	OllamaModel    string
	// HTTPTimeout bounds a single HTTP round trip; the executor applies its
	// own per-attempt deadline on top.
	HTTPTimeout time.Duration
}

// OpenAIClient completes prompts through the chat completions API. Ollama is
// served by the same client through its OpenAI-compatible endpoint.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient builds a client with SDK retries disabled; retrying is the
// executor's job.
func NewOpenAIClient(apiKey, baseURL, model string, httpTimeout time.Duration) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(utils.NewHTTPClient(httpTimeout)),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Model returns the configured model name.
func (c *OpenAIClient) Model() string {
	return c.model
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		// Context errors are left bare so the caller can tell its own
		// deadline from a provider failure.
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", &PermanentError{Err: errors.New("model returned no choices")}
	}
	return resp.Choices[0].Message.Content, nil
}

// New returns the Completer for cfg.Provider. An empty provider means none.
func New(cfg Config) (Completer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderNone:
		return Disabled{}, nil
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: openai api key is empty", ErrNotConfigured)
		}
		model := cfg.Model
		if model == "" {
			model = defaultOpenAIModel
		}
		return NewOpenAIClient(cfg.APIKey, cfg.BaseURL, model, cfg.HTTPTimeout), nil
	case ProviderOllama:
		if cfg.OllamaEndpoint == "" {
			return nil, fmt.Errorf("%w: ollama endpoint is empty", ErrNotConfigured)
		}
		model := cfg.OllamaModel
		if model == "" {
			model = defaultOllamaModel
		}
		baseURL := strings.TrimRight(cfg.OllamaEndpoint, "/") + "/v1"
		return NewOpenAIClient("ollama", baseURL, model, cfg.HTTPTimeout), nil
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
	}
}
