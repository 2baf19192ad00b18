// Package openai talks to OpenAI-compatible chat completion APIs. Both the
// OpenAI and Groq providers are served by this client with different base URLs.
package openai

import (
	"context"
	"strings"
	"time"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
	"github.com/legalaipro/legal-ai-gateway/internal/infrastructure/resilience"
)

const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultGroqBaseURL   = "https://api.groq.com/openai/v1"
)

type Options struct {
	Name        string
	BaseURL     string
	APIKey      string
	Model       string
	Temperature *float64
	MaxTokens   int
	Timeout     time.Duration
}

type Client struct {
	name        string
	baseURL     string
	apiKey      string
	model       string
	temperature *float64
	maxTokens   int
	transport   *transport
	executor    *resilience.Executor
}

func New(opts Options, executor *resilience.Executor) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = "openai"
	}
	return &Client{
		name:        name,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		apiKey:      opts.APIKey,
		model:       opts.Model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		transport:   newTransport(name, timeout),
		executor:    executor,
	}
}

func (c *Client) Name() string {
	return c.name
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete returns the first choice's content; an empty choice list is an
// empty answer rather than an error.
func (c *Client) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	request := chatCompletionRequest{
		Model:       c.model,
		Messages:    toWireMessages(messages),
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	var response chatCompletionResponse
	call := func(ctx context.Context) error {
		response = chatCompletionResponse{}
		return c.transport.postJSON(ctx, c.baseURL+"/chat/completions", c.apiKey, request, &response)
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "chat_"+c.name, call, resilience.ProviderFault)
		err = resilience.NormalizeCircuitError(c.name, err)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", err
	}

	if len(response.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

func toWireMessages(messages []domain.ChatMessage) []chatMessage {
	out := make([]chatMessage, 0, len(messages))
	for _, msg := range messages {
		out = append(out, chatMessage{Role: string(msg.Role), Content: msg.Content})
	}
	return out
}
