package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/DJSquale/gpt-langchain-agent/internal/utils"
	"github.com/DJSquale/gpt-langchain-agent/providers/ai"
	"github.com/DJSquale/gpt-langchain-agent/providers/observability"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"

	chatCompletionsEndpoint = "/chat/completions"
)

// ErrMissingAPIKey is returned by SendMessage when no API key was configured.
var ErrMissingAPIKey = errors.New("openai: API key is not set")

// OpenAIProvider talks to a chat completions endpoint.
type OpenAIProvider struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float32
	client      *http.Client
}

var _ ai.Provider = (*OpenAIProvider)(nil)

// Option configures an OpenAIProvider.
type Option func(*OpenAIProvider)

func WithAPIKey(apiKey string) Option {
	return func(p *OpenAIProvider) { p.apiKey = apiKey }
}

// WithBaseURL overrides DefaultBaseURL. An empty value is ignored.
func WithBaseURL(baseURL string) Option {
	return func(p *OpenAIProvider) {
		if baseURL != "" {
			p.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// WithModel overrides DefaultModel. An empty value is ignored.
func WithModel(model string) Option {
	return func(p *OpenAIProvider) {
		if model != "" {
			p.model = model
		}
	}
}

func WithTemperature(temperature float32) Option {
	return func(p *OpenAIProvider) { p.temperature = temperature }
}

func WithHTTPClient(client *http.Client) Option {
	return func(p *OpenAIProvider) {
		if client != nil {
			p.client = client
		}
	}
}

// New creates a provider for DefaultModel on DefaultBaseURL at temperature 0.
func New(opts ...Option) *OpenAIProvider {
	p := &OpenAIProvider{
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Model returns the configured model name.
func (p *OpenAIProvider) Model() string {
	return p.model
}

// SendMessage posts the conversation to /chat/completions. The request model
// and temperature take precedence over the provider defaults.
func (p *OpenAIProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if p.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if request.Model == "" {
		request.Model = p.model
	}
	if request.GenerationConfig == nil {
		request.GenerationConfig = &ai.GenerationConfig{}
	}
	if request.GenerationConfig.Temperature == nil {
		temperature := p.temperature
		request.GenerationConfig.Temperature = &temperature
	}

	url := p.baseURL + chatCompletionsEndpoint
	if span := observability.SpanFromContext(ctx); span != nil {
		span.SetAttributes(
			observability.String(observability.AttrLLMProvider, "openai"),
			observability.String(observability.AttrLLMModel, request.Model),
			observability.String(observability.AttrLLMEndpoint, url),
			observability.Float64(observability.AttrLLMTemperature, float64(*request.GenerationConfig.Temperature)),
		)
	}

	_, resp, err := utils.DoPostSync[chatCompletionResponse](ctx, p.client, url, p.apiKey, requestToChatCompletion(request))
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if resp == nil {
		return nil, errors.New("openai chat completion: empty response")
	}

	return chatCompletionToGeneric(*resp), nil
}

// IsStopMessage treats stop, length and content_filter finish reasons as
// terminal, as well as replies with neither content nor tool calls.
func (p *OpenAIProvider) IsStopMessage(message *ai.ChatResponse) bool {
	if message == nil {
		return true
	}
	switch message.FinishReason {
	case "stop", "length", "content_filter":
		return len(message.ToolCalls) == 0
	}
	return message.Content == "" && len(message.ToolCalls) == 0
}
