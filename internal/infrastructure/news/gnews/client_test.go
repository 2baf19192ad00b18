package gnews

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
	"github.com/legalaipro/legal-ai-gateway/internal/infrastructure/resilience"
)

const articlesBody = `{
  "totalArticles": 1,
  "articles": [{
    "title": "Supreme Court on BNS",
    "description": "Bench clarifies transition rules.",
    "content": "Full text...",
    "url": "https://example.com/bns",
    "image": "https://example.com/bns.jpg",
    "publishedAt": "2024-07-02T10:00:00Z",
    "source": {"name": "Example Law", "url": "https://example.com"}
  }]
}`

func TestSearchIndiaScopeAddsCountryAndSuffix(t *testing.T) {
	var query map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v4/search" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		query = map[string]string{}
		for key := range r.URL.Query() {
			query[key] = r.URL.Query().Get(key)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(articlesBody))
	}))
	defer server.Close()

	client := New(server.URL+"/api/v4", "news-key", time.Second, resilience.NewExecutor(resilience.DefaultConfig()))
	articles, err := client.Search(context.Background(), domain.NewsQuery{
		Topic: "indian law",
		Scope: domain.NewsScopeIndia,
		Max:   10,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if query["q"] != "indian law india" || query["country"] != "in" || query["lang"] != "en" {
		t.Fatalf("unexpected query: %v", query)
	}
	if query["max"] != "10" || query["apikey"] != "news-key" {
		t.Fatalf("unexpected query: %v", query)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	got := articles[0]
	if got.Title != "Supreme Court on BNS" || got.Source.Name != "Example Law" || got.PublishedAt != "2024-07-02T10:00:00Z" {
		t.Fatalf("unexpected article: %+v", got)
	}
}

func TestSearchGlobalScopeOmitsCountry(t *testing.T) {
	var rawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"totalArticles":0,"articles":[]}`))
	}))
	defer server.Close()

	client := New(server.URL, "k", time.Second, nil)
	articles, err := client.Search(context.Background(), domain.NewsQuery{Topic: "privacy law", Scope: domain.NewsScopeGlobal, Max: 5})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if articles == nil || len(articles) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", articles)
	}
	if strings.Contains(rawQuery, "country=") {
		t.Fatalf("global search should not filter by country: %s", rawQuery)
	}
	if !strings.Contains(rawQuery, "q=privacy+law&") && !strings.HasSuffix(rawQuery, "q=privacy+law") {
		t.Fatalf("unexpected q parameter: %s", rawQuery)
	}
}

func TestSearchMapsUpstreamErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"errors":["You did not provide an API key."]}`))
	}))
	defer server.Close()

	_, err := New(server.URL, "", time.Second, nil).Search(context.Background(), domain.NewsQuery{Topic: "law"})
	failure, ok := domain.AsProviderFailure(err)
	if !ok {
		t.Fatalf("expected provider failure, got %T: %v", err, err)
	}
	if failure.Status() != http.StatusForbidden || failure.Message != "You did not provide an API key." {
		t.Fatalf("unexpected failure: %+v", failure)
	}
	if len(failure.RawPayload) == 0 {
		t.Fatalf("expected raw payload")
	}
}

func TestSearchTreatsErrorsFieldOnSuccessAsBadGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errors":{"q":"The query is too long."}}`))
	}))
	defer server.Close()

	_, err := New(server.URL, "k", time.Second, nil).Search(context.Background(), domain.NewsQuery{Topic: "law"})
	failure, ok := domain.AsProviderFailure(err)
	if !ok {
		t.Fatalf("expected provider failure, got %T: %v", err, err)
	}
	if failure.Status() != http.StatusBadGateway || failure.Message != "q: The query is too long." {
		t.Fatalf("unexpected failure: %+v", failure)
	}
}

func TestSearchRedactsKeyFromTransportErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := server.URL
	server.Close()

	_, err := New(base, "super-secret", time.Second, nil).Search(context.Background(), domain.NewsQuery{Topic: "law"})
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if strings.Contains(err.Error(), "super-secret") {
		t.Fatalf("api key leaked into error: %v", err)
	}
}
