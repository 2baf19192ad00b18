package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
	"github.com/legalaipro/legal-ai-gateway/internal/core/ports"
	"github.com/legalaipro/legal-ai-gateway/internal/observability/logging"
)

const (
	DocumentProviderErrorAnswer = "Error processing text with Groq."
	DocumentEmptyAnswer         = "No response from Groq."
	TextEmptyAnswer             = "No response"
)

// AnalysisObserver receives analysis outcomes, typically metrics.
type AnalysisObserver interface {
	ObserveAnalysis(endpoint, status string, duration time.Duration)
}

type nopAnalysisObserver struct{}

func (nopAnalysisObserver) ObserveAnalysis(string, string, time.Duration) {}

// AnalysisUseCase serves document and free-text analysis from a single
// provider. There is no fallback on this path.
type AnalysisUseCase struct {
	extractor   ports.TextExtractor
	provider    ports.ChatProvider
	instruction string
	observer    AnalysisObserver
}

func NewAnalysisUseCase(
	extractor ports.TextExtractor,
	provider ports.ChatProvider,
	instruction string,
	observer AnalysisObserver,
) *AnalysisUseCase {
	if strings.TrimSpace(instruction) == "" {
		instruction = DefaultComparisonInstruction
	}
	if observer == nil {
		observer = nopAnalysisObserver{}
	}
	return &AnalysisUseCase{
		extractor:   extractor,
		provider:    provider,
		instruction: instruction,
		observer:    observer,
	}
}

// AnalyzeDocument fails only when the document is missing or its text cannot
// be extracted. Provider failures degrade to an in-band answer string.
func (uc *AnalysisUseCase) AnalyzeDocument(ctx context.Context, doc domain.UploadedDocument) (*domain.AnalysisResult, error) {
	if len(doc.Data) == 0 {
		return nil, domain.NewUserError(domain.ErrInvalidInput, "PDF file is required. Provide field 'pdf' or 'contract'.")
	}

	start := time.Now()
	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		uc.observer.ObserveAnalysis("analyze", "extraction_error", time.Since(start))
		return nil, domain.WrapError(domain.ErrExtraction, "analyze document", err)
	}

	answer := uc.complete(ctx, "analyze", buildComparisonPrompt(text, uc.instruction), DocumentProviderErrorAnswer, DocumentEmptyAnswer)
	status := "success"
	if answer == DocumentProviderErrorAnswer {
		status = "provider_error"
	}
	uc.observer.ObserveAnalysis("analyze", status, time.Since(start))

	return &domain.AnalysisResult{
		ExtractedText: text,
		ModelAnswer:   answer,
	}, nil
}

func (uc *AnalysisUseCase) AnalyzeText(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "", domain.NewUserError(domain.ErrInvalidInput, "'query' text is required.")
	}

	start := time.Now()
	if uc.provider == nil {
		uc.observer.ObserveAnalysis("analyze_text", "provider_error", time.Since(start))
		return "", fmt.Errorf("analyze text: %w", domain.ErrConfiguration)
	}
	answer, err := uc.provider.Complete(ctx, []domain.ChatMessage{{Role: domain.RoleUser, Content: query}})
	if err != nil {
		slog.Error("analyze_text_failed",
			"request_id", logging.RequestIDFromContext(ctx),
			"provider", uc.provider.Name(),
			"error", err,
		)
		uc.observer.ObserveAnalysis("analyze_text", "provider_error", time.Since(start))
		return "", fmt.Errorf("analyze text: %w", err)
	}
	uc.observer.ObserveAnalysis("analyze_text", "success", time.Since(start))
	if strings.TrimSpace(answer) == "" {
		return TextEmptyAnswer, nil
	}
	return answer, nil
}

func (uc *AnalysisUseCase) complete(ctx context.Context, endpoint, prompt, errorAnswer, emptyAnswer string) string {
	if uc.provider == nil {
		slog.Error("analysis_provider_missing", "request_id", logging.RequestIDFromContext(ctx), "endpoint", endpoint)
		return errorAnswer
	}
	answer, err := uc.provider.Complete(ctx, []domain.ChatMessage{{Role: domain.RoleUser, Content: prompt}})
	if err != nil {
		slog.Error("analysis_provider_failed",
			"request_id", logging.RequestIDFromContext(ctx),
			"endpoint", endpoint,
			"provider", uc.provider.Name(),
			"error", err,
		)
		return errorAnswer
	}
	if strings.TrimSpace(answer) == "" {
		return emptyAnswer
	}
	return answer
}
