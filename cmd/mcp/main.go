package main

import (
	"context"
	"log/slog"
	"os"

	mcpadapter "github.com/legalaipro/legal-ai-gateway/internal/adapters/mcp"
	"github.com/legalaipro/legal-ai-gateway/internal/bootstrap"
	"github.com/legalaipro/legal-ai-gateway/internal/config"
	"github.com/legalaipro/legal-ai-gateway/internal/observability/logging"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	logging.NewStderrJSONLogger(cfg.ServiceName+"-mcp", cfg.LogLevel)

	app, err := bootstrap.New(context.Background(), cfg)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}

	server := mcpadapter.NewServer("legal-ai-gateway", version, app.Chat, app.Analysis)
	slog.Info("mcp_serving_stdio", "primary_key", cfg.PrimaryConfigured())
	if err := server.ServeStdio(); err != nil {
		slog.Error("mcp_server_failed", "error", err)
		os.Exit(1)
	}
}
