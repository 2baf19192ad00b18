package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
)

const maxErrorBodyBytes = 16 << 10

type transport struct {
	provider   string
	httpClient *http.Client
}

func newTransport(provider string, timeout time.Duration) *transport {
	return &transport{
		provider:   provider,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (t *transport) postJSON(ctx context.Context, url, apiKey string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", t.provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", t.provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", t.provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return t.failureFromResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", t.provider, err)
	}
	return nil
}

// failureFromResponse reads the OpenAI error envelope
// {"error":{"message":...}}; any other body is kept as the raw payload.
func (t *transport) failureFromResponse(resp *http.Response) *domain.ProviderFailure {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	trimmed := bytes.TrimSpace(raw)

	failure := &domain.ProviderFailure{
		Provider:   t.provider,
		StatusCode: resp.StatusCode,
	}

	if len(trimmed) > 0 && json.Valid(trimmed) {
		failure.RawPayload = json.RawMessage(trimmed)
		var envelope struct {
			Error json.RawMessage `json:"error"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err == nil {
			failure.Message = envelopeMessage(envelope.Error)
		}
	} else if len(trimmed) > 0 {
		quoted, _ := json.Marshal(string(trimmed))
		failure.RawPayload = quoted
		failure.Message = string(trimmed)
	}

	if strings.TrimSpace(failure.Message) == "" {
		failure.Message = fmt.Sprintf("%s request failed with status %s", t.provider, resp.Status)
	}
	return failure
}

func envelopeMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var object struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &object); err == nil && object.Message != "" {
		return object.Message
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	return ""
}
