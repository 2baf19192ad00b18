package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/legalaipro/legal-ai-gateway/internal/adapters/http/openapi"
	"github.com/legalaipro/legal-ai-gateway/internal/config"
	"github.com/legalaipro/legal-ai-gateway/internal/core/ports"
	"github.com/legalaipro/legal-ai-gateway/internal/core/usecase"
	"github.com/legalaipro/legal-ai-gateway/internal/infrastructure/extractor"
	"github.com/legalaipro/legal-ai-gateway/internal/infrastructure/llm/gemini"
	"github.com/legalaipro/legal-ai-gateway/internal/infrastructure/llm/openai"
	"github.com/legalaipro/legal-ai-gateway/internal/infrastructure/news/gnews"
	"github.com/legalaipro/legal-ai-gateway/internal/infrastructure/resilience"
	"github.com/legalaipro/legal-ai-gateway/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Metrics *metrics.GatewayMetrics

	Chat     *usecase.ChatRouter
	Analysis *usecase.AnalysisUseCase
	News     *usecase.NewsUseCase

	OpenAPIDocument []byte
}

// New resolves credential presence once; an absent provider is passed on as
// a nil interface so routing sees the slot as unconfigured.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prompts, err := usecase.LoadPrompts(cfg.PromptsFile)
	if err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}

	gatewayMetrics := metrics.NewGatewayMetrics(cfg.ServiceName)
	executor := resilience.NewExecutor(resilienceConfig(cfg))
	executor.SetStateObserver(gatewayMetrics.ObserveBreakerState)

	primary, err := newChatProvider(ctx, cfg, cfg.PrimaryProvider, executor)
	if err != nil {
		return nil, fmt.Errorf("init primary provider: %w", err)
	}
	var secondary ports.ChatProvider
	if cfg.SecondaryProvider != config.ProviderNone {
		secondary, err = newChatProvider(ctx, cfg, cfg.SecondaryProvider, executor)
		if err != nil {
			return nil, fmt.Errorf("init secondary provider: %w", err)
		}
	}

	chat := usecase.NewChatRouter(primary, secondary, usecase.ChatRoutingConfig{
		PrimaryEnabled:        cfg.PrimaryConfigured(),
		SecondaryEnabled:      cfg.SecondaryConfigured(),
		SystemPrompt:          prompts.SystemPrompt,
		PrimaryCredentialName: config.CredentialName(cfg.PrimaryProvider),
	}, gatewayMetrics)

	analysisProvider := primary
	if cfg.AnalysisProvider == config.AnalysisSecondary {
		analysisProvider = secondary
	}
	analysis := usecase.NewAnalysisUseCase(
		extractor.NewDispatcher(gatewayMetrics),
		analysisProvider,
		prompts.ComparisonInstruction,
		gatewayMetrics,
	)

	var searcher ports.NewsSearcher
	if cfg.NewsAPIKey != "" {
		searcher = gnews.New(cfg.NewsBaseURL, cfg.NewsAPIKey, time.Duration(cfg.NewsTimeoutSeconds)*time.Second, executor)
	}

	openAPIDocument, err := openapi.JSON(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("providers_configured",
		"primary", cfg.PrimaryProvider,
		"primary_key", cfg.PrimaryConfigured(),
		"secondary", cfg.SecondaryProvider,
		"secondary_key", cfg.SecondaryConfigured(),
		"analysis", cfg.AnalysisProvider,
		"news_key", searcher != nil,
	)

	return &App{
		Config:          cfg,
		Metrics:         gatewayMetrics,
		Chat:            chat,
		Analysis:        analysis,
		News:            usecase.NewNewsUseCase(searcher),
		OpenAPIDocument: openAPIDocument,
	}, nil
}

func newChatProvider(ctx context.Context, cfg config.Config, kind string, executor *resilience.Executor) (ports.ChatProvider, error) {
	if cfg.APIKeyFor(kind) == "" {
		return nil, nil
	}
	timeout := time.Duration(cfg.LLMTimeoutSeconds) * time.Second

	switch kind {
	case config.ProviderOpenAI:
		temperature := cfg.OpenAITemperature
		return openai.New(openai.Options{
			Name:        config.ProviderOpenAI,
			BaseURL:     cfg.OpenAIBaseURL,
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.OpenAIModel,
			Temperature: &temperature,
			MaxTokens:   cfg.OpenAIMaxTokens,
			Timeout:     timeout,
		}, executor), nil
	case config.ProviderGroq:
		return openai.New(openai.Options{
			Name:    config.ProviderGroq,
			BaseURL: cfg.GroqBaseURL,
			APIKey:  cfg.GroqAPIKey,
			Model:   cfg.GroqModel,
			Timeout: timeout,
		}, executor), nil
	case config.ProviderGemini:
		client, err := gemini.New(ctx, gemini.Options{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: timeout,
		}, executor)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", kind)
	}
}

func resilienceConfig(cfg config.Config) resilience.Config {
	out := resilience.DefaultConfig()
	out.Enabled = cfg.BreakerEnabled
	out.MinRequests = uint32(cfg.BreakerMinRequests)
	out.FailureRatio = cfg.BreakerFailureRatio
	out.OpenTimeout = time.Duration(cfg.BreakerOpenTimeoutSeconds) * time.Second
	return out
}
