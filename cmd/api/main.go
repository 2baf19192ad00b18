package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	httpadapter "github.com/legalaipro/legal-ai-gateway/internal/adapters/http"
	"github.com/legalaipro/legal-ai-gateway/internal/bootstrap"
	"github.com/legalaipro/legal-ai-gateway/internal/config"
	"github.com/legalaipro/legal-ai-gateway/internal/observability/logging"
)

func main() {
	cfg := config.Load()
	logging.NewJSONLogger(cfg.ServiceName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}

	router := httpadapter.NewRouter(
		cfg,
		app.Chat,
		app.Chat,
		app.Analysis,
		app.Analysis,
		app.News,
		app.Metrics,
	).WithOpenAPIDocument(app.OpenAPIDocument).Handler()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      time.Duration(cfg.LLMTimeoutSeconds+30) * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		slog.Info("api_listening",
			"port", cfg.Port,
			"primary_key", cfg.PrimaryConfigured(),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		slog.Error("api_server_failed", "error", err)
		os.Exit(1)
	}
	slog.Info("api_stopped")
}
