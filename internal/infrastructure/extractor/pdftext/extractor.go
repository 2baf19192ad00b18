// Package pdftext extracts the plain text layer of PDF documents.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
)

var ErrNoTextLayer = errors.New("pdf has no readable pages")

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns page texts joined by blank lines. Scanned documents without
// a text layer yield an empty string, not an error.
func (e *Extractor) Extract(ctx context.Context, doc domain.UploadedDocument) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if recovered := recover(); recovered != nil {
			text = ""
			err = fmt.Errorf("parse pdf %q: %v", doc.Filename, recovered)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		return "", fmt.Errorf("open pdf %q: %w", doc.Filename, err)
	}

	pageCount := reader.NumPage()
	if pageCount == 0 {
		return "", fmt.Errorf("open pdf %q: %w", doc.Filename, ErrNoTextLayer)
	}

	pages := make([]string, 0, pageCount)
	for index := 1; index <= pageCount; index++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(index)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf %q page %d: %w", doc.Filename, index, err)
		}
		content = strings.TrimSpace(content)
		if content != "" {
			pages = append(pages, content)
		}
	}
	return strings.Join(pages, "\n\n"), nil
}
