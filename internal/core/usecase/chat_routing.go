package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
	"github.com/legalaipro/legal-ai-gateway/internal/core/ports"
	"github.com/legalaipro/legal-ai-gateway/internal/observability/logging"
)

// ChatRoutingConfig is resolved once at startup from credential presence.
type ChatRoutingConfig struct {
	PrimaryEnabled        bool
	SecondaryEnabled      bool
	SystemPrompt          string
	PrimaryCredentialName string
}

// RoutingObserver receives per-call routing outcomes, typically metrics.
type RoutingObserver interface {
	ObserveProviderCall(provider string, duration time.Duration, err error)
	ObserveFallback(reason string)
	ObserveChatReply(slot domain.ProviderSlot, vendor string)
}

type nopObserver struct{}

func (nopObserver) ObserveProviderCall(string, time.Duration, error) {}
func (nopObserver) ObserveFallback(string)                          {}
func (nopObserver) ObserveChatReply(domain.ProviderSlot, string)    {}

type ChatRouter struct {
	primary   ports.ChatProvider
	secondary ports.ChatProvider
	cfg       ChatRoutingConfig
	observer  RoutingObserver
}

func NewChatRouter(primary, secondary ports.ChatProvider, cfg ChatRoutingConfig, observer RoutingObserver) *ChatRouter {
	if strings.TrimSpace(cfg.SystemPrompt) == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	if cfg.PrimaryCredentialName == "" {
		cfg.PrimaryCredentialName = "OPENAI_API_KEY"
	}
	if primary == nil {
		cfg.PrimaryEnabled = false
	}
	if secondary == nil {
		cfg.SecondaryEnabled = false
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &ChatRouter{
		primary:   primary,
		secondary: secondary,
		cfg:       cfg,
		observer:  observer,
	}
}

func (r *ChatRouter) PrimaryConfigured() bool {
	return r.cfg.PrimaryEnabled
}

func (r *ChatRouter) Reply(ctx context.Context, message string, history []domain.ChatMessage) (*domain.ChatReply, error) {
	if message == "" {
		return nil, domain.NewUserError(domain.ErrInvalidInput, "'message' is required.")
	}
	messages := buildConversation(r.cfg.SystemPrompt, history, message)
	requestID := logging.RequestIDFromContext(ctx)

	if !r.cfg.PrimaryEnabled {
		if !r.cfg.SecondaryEnabled {
			return nil, domain.NewUserError(
				domain.ErrConfiguration,
				fmt.Sprintf("%s is not set on the server", r.cfg.PrimaryCredentialName),
			)
		}
		text, err := r.call(ctx, r.secondary, messages)
		if err != nil {
			failure := normalizeFailure(r.secondary, err)
			slog.Error("chat_secondary_failed",
				"request_id", requestID,
				"provider", r.secondary.Name(),
				"status", failure.Status(),
				"error", failure.Message,
			)
			return nil, &domain.ProviderFailure{
				Provider:   failure.Provider,
				StatusCode: http.StatusInternalServerError,
				Message:    failure.Message,
			}
		}
		return r.reply(domain.SlotSecondary, r.secondary, text), nil
	}

	text, err := r.call(ctx, r.primary, messages)
	if err == nil {
		return r.reply(domain.SlotPrimary, r.primary, text), nil
	}

	failure := normalizeFailure(r.primary, err)
	quota := IsQuotaFailure(failure)
	slog.Error("chat_primary_failed",
		"request_id", requestID,
		"provider", r.primary.Name(),
		"status", failure.Status(),
		"error", failure.Message,
		"quota", quota,
	)
	if !quota || !r.cfg.SecondaryEnabled {
		return nil, failure
	}

	r.observer.ObserveFallback("quota")
	fallbackText, fallbackErr := r.call(ctx, r.secondary, messages)
	if fallbackErr != nil {
		slog.Error("chat_fallback_failed",
			"request_id", requestID,
			"provider", r.secondary.Name(),
			"error", fallbackErr,
		)
		return nil, failure
	}
	slog.Info("chat_fallback_served",
		"request_id", requestID,
		"primary", r.primary.Name(),
		"secondary", r.secondary.Name(),
	)
	return r.reply(domain.SlotSecondary, r.secondary, fallbackText), nil
}

func (r *ChatRouter) call(ctx context.Context, provider ports.ChatProvider, messages []domain.ChatMessage) (string, error) {
	start := time.Now()
	text, err := provider.Complete(ctx, messages)
	r.observer.ObserveProviderCall(provider.Name(), time.Since(start), err)
	return text, err
}

func (r *ChatRouter) reply(slot domain.ProviderSlot, provider ports.ChatProvider, text string) *domain.ChatReply {
	r.observer.ObserveChatReply(slot, provider.Name())
	return &domain.ChatReply{
		ReplyText:    text,
		ProviderName: slot,
		Vendor:       provider.Name(),
	}
}

// buildConversation places the system prompt at position 0. Caller history is
// forwarded without windowing; caller-supplied system turns and unknown roles
// are dropped.
func buildConversation(systemPrompt string, history []domain.ChatMessage, message string) []domain.ChatMessage {
	out := make([]domain.ChatMessage, 0, len(history)+2)
	out = append(out, domain.ChatMessage{Role: domain.RoleSystem, Content: systemPrompt})
	for _, msg := range history {
		if msg.Role == domain.RoleSystem || !msg.Role.Valid() {
			continue
		}
		out = append(out, msg)
	}
	out = append(out, domain.ChatMessage{Role: domain.RoleUser, Content: message})
	return out
}

func normalizeFailure(provider ports.ChatProvider, err error) *domain.ProviderFailure {
	if failure, ok := domain.AsProviderFailure(err); ok {
		if strings.TrimSpace(failure.Message) == "" {
			copied := *failure
			copied.Message = fmt.Sprintf("Failed to get response from %s", provider.Name())
			return &copied
		}
		return failure
	}
	message := ""
	if err != nil {
		message = err.Error()
	}
	if strings.TrimSpace(message) == "" {
		message = fmt.Sprintf("Failed to get response from %s", provider.Name())
	}
	return &domain.ProviderFailure{
		Provider:   provider.Name(),
		StatusCode: http.StatusInternalServerError,
		Message:    message,
	}
}
