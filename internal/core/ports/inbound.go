package ports

import (
	"context"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
)

// ChatService is the inbound contract for conversational replies with provider fallback.
type ChatService interface {
	Reply(ctx context.Context, message string, history []domain.ChatMessage) (*domain.ChatReply, error)
}

// DocumentAnalyzer is the inbound contract for uploaded document analysis.
type DocumentAnalyzer interface {
	AnalyzeDocument(ctx context.Context, doc domain.UploadedDocument) (*domain.AnalysisResult, error)
}

// TextAnalyzer is the inbound contract for free-text analysis.
type TextAnalyzer interface {
	AnalyzeText(ctx context.Context, query string) (string, error)
}

// NewsService is the inbound contract for the legal news feed.
type NewsService interface {
	Search(ctx context.Context, query domain.NewsQuery) ([]domain.NewsArticle, error)
}

// ProviderStatus reports credential presence determined at startup.
type ProviderStatus interface {
	PrimaryConfigured() bool
}
