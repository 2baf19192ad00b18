// Package gemini adapts the Google Gemini API to the chat provider port.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
	"github.com/legalaipro/legal-ai-gateway/internal/infrastructure/resilience"
)

const DefaultModel = "gemini-2.0-flash"

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Options struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type Client struct {
	models   contentGenerator
	model    string
	timeout  time.Duration
	executor *resilience.Executor
}

func New(ctx context.Context, opts Options, executor *resilience.Executor) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, domain.WrapError(domain.ErrConfiguration, "gemini client", errors.New("api key is empty"))
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newWithGenerator(client.Models, opts, executor), nil
}

func newWithGenerator(models contentGenerator, opts Options, executor *resilience.Executor) *Client {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		models:   models,
		model:    model,
		timeout:  timeout,
		executor: executor,
	}
}

func (c *Client) Name() string {
	return "gemini"
}

func (c *Client) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	system, contents := toContents(messages)
	config := &genai.GenerateContentConfig{}
	if system != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}

	var response *genai.GenerateContentResponse
	call := func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		resp, err := c.models.GenerateContent(callCtx, c.model, contents, config)
		if err != nil {
			return toProviderFailure(err)
		}
		response = resp
		return nil
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "chat_gemini", call, resilience.ProviderFault)
		err = resilience.NormalizeCircuitError(c.Name(), err)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", err
	}
	return responseText(response), nil
}

// toContents lifts system turns into the system instruction; Gemini only
// knows the user and model roles.
func toContents(messages []domain.ChatMessage) (string, []*genai.Content) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case domain.RoleSystem:
			system = append(system, msg.Content)
		case domain.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		}
	}
	return strings.Join(system, "\n\n"), contents
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}
	var builder strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Text == "" {
			continue
		}
		builder.WriteString(part.Text)
	}
	return strings.TrimSpace(builder.String())
}

func toProviderFailure(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var apiErrPtr *genai.APIError
		if !errors.As(err, &apiErrPtr) || apiErrPtr == nil {
			return err
		}
		apiErr = *apiErrPtr
	}

	failure := &domain.ProviderFailure{
		Provider:   "gemini",
		StatusCode: apiErr.Code,
		Message:    apiErr.Message,
	}
	if failure.StatusCode == 0 {
		failure.StatusCode = http.StatusBadGateway
	}
	if strings.TrimSpace(failure.Message) == "" {
		failure.Message = apiErr.Status
	}
	if payload, marshalErr := json.Marshal(map[string]any{
		"code":    apiErr.Code,
		"status":  apiErr.Status,
		"message": apiErr.Message,
		"details": apiErr.Details,
	}); marshalErr == nil {
		failure.RawPayload = payload
	}
	return failure
}
