package ports

import (
	"context"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
)

// ChatProvider generates one chat completion. Failures carrying an upstream
// status are reported as *domain.ProviderFailure.
type ChatProvider interface {
	Name() string
	Complete(ctx context.Context, messages []domain.ChatMessage) (string, error)
}

// TextExtractor extracts plain text from an uploaded document.
type TextExtractor interface {
	Extract(ctx context.Context, doc domain.UploadedDocument) (string, error)
}

// NewsSearcher searches an external news index.
type NewsSearcher interface {
	Search(ctx context.Context, query domain.NewsQuery) ([]domain.NewsArticle, error)
}
