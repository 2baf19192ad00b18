package httpadapter

import (
	"context"
	"net/http"
	"sync"

	"github.com/legalaipro/legal-ai-gateway/internal/config"
	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
	"github.com/legalaipro/legal-ai-gateway/internal/core/ports"
	"github.com/legalaipro/legal-ai-gateway/internal/core/usecase"
)

type providerFake struct {
	name  string
	reply string
	err   error

	mu    sync.Mutex
	calls [][]domain.ChatMessage
}

func (f *providerFake) Name() string { return f.name }

func (f *providerFake) Complete(_ context.Context, messages []domain.ChatMessage) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, messages)
	return f.reply, f.err
}

func (f *providerFake) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type extractorFake struct {
	text string
	err  error
	seen []domain.UploadedDocument
}

func (f *extractorFake) Extract(_ context.Context, doc domain.UploadedDocument) (string, error) {
	f.seen = append(f.seen, doc)
	return f.text, f.err
}

type newsFake struct {
	articles []domain.NewsArticle
	err      error
	queries  []domain.NewsQuery
}

func (f *newsFake) Search(_ context.Context, query domain.NewsQuery) ([]domain.NewsArticle, error) {
	f.queries = append(f.queries, query)
	return f.articles, f.err
}

type gatewayFixture struct {
	primary   *providerFake
	secondary *providerFake
	extractor *extractorFake
	news      *newsFake
	cfg       config.Config
}

func newFixture() *gatewayFixture {
	cfg := config.LoadFrom("")
	cfg.OpenAIAPIKey = "sk-test"
	cfg.GroqAPIKey = "gsk-test"
	cfg.MaxUploadBytes = 1 << 10
	return &gatewayFixture{
		primary:   &providerFake{name: "openai", reply: "primary answer"},
		secondary: &providerFake{name: "groq", reply: "secondary answer"},
		extractor: &extractorFake{text: "extracted contract text"},
		news:      &newsFake{},
		cfg:       cfg,
	}
}

// handler wires real use cases over the fakes. Nil fakes become nil
// interfaces so the router sees an unconfigured slot.
func (fx *gatewayFixture) handler() http.Handler {
	var primary, secondary ports.ChatProvider
	if fx.primary != nil {
		primary = fx.primary
	}
	if fx.secondary != nil {
		secondary = fx.secondary
	}
	var searcher ports.NewsSearcher
	if fx.news != nil {
		searcher = fx.news
	}

	chat := usecase.NewChatRouter(primary, secondary, usecase.ChatRoutingConfig{
		PrimaryEnabled:        primary != nil,
		SecondaryEnabled:      secondary != nil,
		PrimaryCredentialName: "OPENAI_API_KEY",
	}, nil)
	analysis := usecase.NewAnalysisUseCase(fx.extractor, primary, "", nil)

	return NewRouter(fx.cfg, chat, chat, analysis, analysis, usecase.NewNewsUseCase(searcher), nil).
		WithOpenAPIDocument([]byte(`{"openapi":"3.0.3"}`)).
		Handler()
}
