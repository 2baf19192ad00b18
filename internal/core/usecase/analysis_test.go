package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
)

type extractorFake struct {
	text string
	err  error
	doc  domain.UploadedDocument
}

func (f *extractorFake) Extract(_ context.Context, doc domain.UploadedDocument) (string, error) {
	f.doc = doc
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func TestAnalyzeDocumentBuildsComparisonPrompt(t *testing.T) {
	extractor := &extractorFake{text: "Section 420 IPC"}
	provider := &chatProviderFake{name: "groq", reply: "BNS 318 replaces IPC 420"}
	uc := NewAnalysisUseCase(extractor, provider, "", nil)

	result, err := uc.AnalyzeDocument(context.Background(), domain.UploadedDocument{FieldName: domain.FieldPDF, Data: []byte("%PDF-1.4")})
	if err != nil {
		t.Fatalf("AnalyzeDocument() error = %v", err)
	}
	if result.ExtractedText != "Section 420 IPC" || result.ModelAnswer != "BNS 318 replaces IPC 420" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(provider.messages) != 1 || provider.messages[0].Role != domain.RoleUser {
		t.Fatalf("expected a single user turn, got %+v", provider.messages)
	}
	want := "Section 420 IPC\n\n" + DefaultComparisonInstruction
	if provider.messages[0].Content != want {
		t.Fatalf("unexpected prompt %q", provider.messages[0].Content)
	}
}

func TestAnalyzeDocumentProviderFailureDegradesInBand(t *testing.T) {
	extractor := &extractorFake{text: "contract text"}
	provider := &chatProviderFake{name: "groq", err: errors.New("boom")}
	uc := NewAnalysisUseCase(extractor, provider, "", nil)

	result, err := uc.AnalyzeDocument(context.Background(), domain.UploadedDocument{Data: []byte("x")})
	if err != nil {
		t.Fatalf("provider failure must not fail the analysis, got %v", err)
	}
	if result.ModelAnswer != DocumentProviderErrorAnswer {
		t.Fatalf("expected fallback answer, got %q", result.ModelAnswer)
	}
	if result.ExtractedText != "contract text" {
		t.Fatalf("expected extracted text to be returned, got %q", result.ExtractedText)
	}
}

func TestAnalyzeDocumentEmptyAnswer(t *testing.T) {
	uc := NewAnalysisUseCase(&extractorFake{text: "t"}, &chatProviderFake{name: "groq", reply: "  "}, "", nil)
	result, err := uc.AnalyzeDocument(context.Background(), domain.UploadedDocument{Data: []byte("x")})
	if err != nil {
		t.Fatalf("AnalyzeDocument() error = %v", err)
	}
	if result.ModelAnswer != DocumentEmptyAnswer {
		t.Fatalf("expected empty answer marker, got %q", result.ModelAnswer)
	}
}

func TestAnalyzeDocumentExtractionError(t *testing.T) {
	provider := &chatProviderFake{name: "groq", reply: "unused"}
	uc := NewAnalysisUseCase(&extractorFake{err: errors.New("malformed xref")}, provider, "", nil)

	_, err := uc.AnalyzeDocument(context.Background(), domain.UploadedDocument{Data: []byte("x")})
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected extraction error, got %v", err)
	}
	if provider.calls != 0 {
		t.Fatalf("provider must not be called when extraction fails")
	}
}

func TestAnalyzeDocumentRequiresData(t *testing.T) {
	uc := NewAnalysisUseCase(&extractorFake{}, &chatProviderFake{name: "groq"}, "", nil)
	_, err := uc.AnalyzeDocument(context.Background(), domain.UploadedDocument{})
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestAnalyzeTextForwardsQueryVerbatim(t *testing.T) {
	provider := &chatProviderFake{name: "groq", reply: "precedents"}
	uc := NewAnalysisUseCase(&extractorFake{}, provider, "", nil)

	answer, err := uc.AnalyzeText(context.Background(), "Kesavananda Bharati summary")
	if err != nil {
		t.Fatalf("AnalyzeText() error = %v", err)
	}
	if answer != "precedents" {
		t.Fatalf("unexpected answer %q", answer)
	}
	if len(provider.messages) != 1 || provider.messages[0].Content != "Kesavananda Bharati summary" {
		t.Fatalf("query must be forwarded without a system prompt: %+v", provider.messages)
	}
}

func TestAnalyzeTextErrors(t *testing.T) {
	uc := NewAnalysisUseCase(&extractorFake{}, &chatProviderFake{name: "groq", err: errors.New("down")}, "", nil)

	if _, err := uc.AnalyzeText(context.Background(), ""); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	_, err := uc.AnalyzeText(context.Background(), "query")
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected provider error, got %v", err)
	}
}
