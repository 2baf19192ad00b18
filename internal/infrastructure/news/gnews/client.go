// Package gnews searches news articles through the GNews v4 API.
package gnews

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
	"github.com/legalaipro/legal-ai-gateway/internal/infrastructure/resilience"
)

const (
	DefaultBaseURL = "https://gnews.io/api/v4"
	providerName   = "gnews"
	maxBodyBytes   = 4 << 20
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, apiKey string, timeout time.Duration, executor *resilience.Executor) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		executor:   executor,
	}
}

type searchResponse struct {
	TotalArticles int                  `json:"totalArticles"`
	Articles      []domain.NewsArticle `json:"articles"`
	Errors        json.RawMessage      `json:"errors"`
}

func (c *Client) Search(ctx context.Context, query domain.NewsQuery) ([]domain.NewsArticle, error) {
	endpoint := c.baseURL + "/search?" + c.searchParams(query).Encode()

	var articles []domain.NewsArticle
	call := func(ctx context.Context) error {
		found, err := c.fetch(ctx, endpoint)
		if err != nil {
			return err
		}
		articles = found
		return nil
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "news_search", call, resilience.ProviderFault)
		err = resilience.NormalizeCircuitError(providerName, err)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// searchParams narrows India-scoped searches by both the query text and the
// country filter, matching what the legal news page has always requested.
func (c *Client) searchParams(query domain.NewsQuery) url.Values {
	topic := strings.TrimSpace(query.Topic)
	params := url.Values{}
	params.Set("lang", "en")
	if query.Scope == domain.NewsScopeIndia {
		topic += " india"
		params.Set("country", "in")
	}
	params.Set("q", topic)
	if query.Max > 0 {
		params.Set("max", strconv.Itoa(query.Max))
	}
	params.Set("apikey", c.apiKey)
	return params
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]domain.NewsArticle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create gnews request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error carries the full URL, including the api key.
		return nil, fmt.Errorf("gnews request failed: %s", redact(err.Error(), c.apiKey))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read gnews response: %w", err)
	}

	var payload searchResponse
	decodeErr := json.Unmarshal(raw, &payload)

	if resp.StatusCode >= 300 {
		failure := &domain.ProviderFailure{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Message:    errorsMessage(payload.Errors),
		}
		if json.Valid(bytes.TrimSpace(raw)) {
			failure.RawPayload = json.RawMessage(bytes.TrimSpace(raw))
		}
		if failure.Message == "" {
			failure.Message = fmt.Sprintf("news request failed with status %s", resp.Status)
		}
		return nil, failure
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode gnews response: %w", decodeErr)
	}
	if message := errorsMessage(payload.Errors); message != "" {
		return nil, &domain.ProviderFailure{
			Provider:   providerName,
			StatusCode: http.StatusBadGateway,
			Message:    message,
			RawPayload: payload.Errors,
		}
	}
	if payload.Articles == nil {
		return []domain.NewsArticle{}, nil
	}
	return payload.Articles, nil
}

// errorsMessage flattens the errors field, which GNews sends either as a list
// of strings or as an object keyed by parameter name.
func errorsMessage(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}

	var list []string
	if err := json.Unmarshal(trimmed, &list); err == nil {
		return strings.Join(list, "; ")
	}

	var object map[string]string
	if err := json.Unmarshal(trimmed, &object); err == nil {
		keys := make([]string, 0, len(object))
		for key := range object {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, key+": "+object[key])
		}
		return strings.Join(parts, "; ")
	}

	return string(trimmed)
}

func redact(message, secret string) string {
	if secret == "" {
		return message
	}
	message = strings.ReplaceAll(message, url.QueryEscape(secret), "REDACTED")
	return strings.ReplaceAll(message, secret, "REDACTED")
}
