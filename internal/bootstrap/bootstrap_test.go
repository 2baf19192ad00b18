package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/legalaipro/legal-ai-gateway/internal/config"
)

func baseConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.LoadFrom("")
	cfg.OpenAIAPIKey = ""
	cfg.GroqAPIKey = ""
	cfg.GeminiAPIKey = ""
	cfg.NewsAPIKey = ""
	cfg.PromptsFile = ""
	return cfg
}

func TestNewWithoutCredentials(t *testing.T) {
	app, err := New(context.Background(), baseConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if app.Chat.PrimaryConfigured() {
		t.Fatalf("primary should be unconfigured")
	}
	if len(app.OpenAPIDocument) == 0 {
		t.Fatalf("expected rendered openapi document")
	}
	if app.Metrics == nil || app.Analysis == nil || app.News == nil {
		t.Fatalf("expected wired use cases: %+v", app)
	}
}

func TestNewWithKeysWiresProviders(t *testing.T) {
	cfg := baseConfig(t)
	cfg.OpenAIAPIKey = "sk-test"
	cfg.GroqAPIKey = "gsk-test"
	cfg.NewsAPIKey = "news"
	cfg.AnalysisProvider = config.AnalysisSecondary

	app, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !app.Chat.PrimaryConfigured() {
		t.Fatalf("primary should be configured")
	}
}

func TestNewProviderIsNilInterfaceWithoutKey(t *testing.T) {
	provider, err := newChatProvider(context.Background(), baseConfig(t), config.ProviderGroq, nil)
	if err != nil {
		t.Fatalf("newChatProvider: %v", err)
	}
	if provider != nil {
		t.Fatalf("expected nil interface, got %#v", provider)
	}
}

func TestNewLoadsPromptOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := os.WriteFile(path, []byte("system_prompt: Be brief.\n"), 0o600); err != nil {
		t.Fatalf("write prompts: %v", err)
	}
	cfg := baseConfig(t)
	cfg.PromptsFile = path
	if _, err := New(context.Background(), cfg); err != nil {
		t.Fatalf("New: %v", err)
	}

	cfg.PromptsFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for missing prompts file")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := baseConfig(t)
	cfg.PrimaryProvider = "unknown"
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatalf("expected validation error")
	}
}
