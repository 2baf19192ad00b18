package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
	"github.com/legalaipro/legal-ai-gateway/internal/core/ports"
)

const (
	DefaultNewsTopic = "indian law"
	DefaultNewsMax   = 10
	MaxNewsArticles  = 50
)

type NewsUseCase struct {
	searcher ports.NewsSearcher
}

func NewNewsUseCase(searcher ports.NewsSearcher) *NewsUseCase {
	return &NewsUseCase{searcher: searcher}
}

func (uc *NewsUseCase) Search(ctx context.Context, query domain.NewsQuery) ([]domain.NewsArticle, error) {
	if uc.searcher == nil {
		return nil, domain.NewUserError(domain.ErrConfiguration, "NEWS_API_KEY is not set on the server")
	}

	query.Topic = strings.TrimSpace(query.Topic)
	if query.Topic == "" {
		query.Topic = DefaultNewsTopic
	}
	switch query.Scope {
	case domain.NewsScopeIndia, domain.NewsScopeGlobal:
	case "":
		query.Scope = domain.NewsScopeIndia
	default:
		return nil, domain.NewUserError(domain.ErrInvalidInput, "'scope' must be 'india' or 'global'.")
	}
	if query.Max <= 0 {
		query.Max = DefaultNewsMax
	}
	if query.Max > MaxNewsArticles {
		query.Max = MaxNewsArticles
	}

	articles, err := uc.searcher.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search news: %w", err)
	}
	if articles == nil {
		articles = []domain.NewsArticle{}
	}
	return articles, nil
}
