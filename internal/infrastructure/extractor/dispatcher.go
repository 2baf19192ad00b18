// Package extractor picks a text extractor for an uploaded document by
// sniffing its content rather than trusting the declared MIME type.
package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
	"github.com/legalaipro/legal-ai-gateway/internal/core/ports"
	"github.com/legalaipro/legal-ai-gateway/internal/infrastructure/extractor/pdftext"
	"github.com/legalaipro/legal-ai-gateway/internal/infrastructure/extractor/plaintext"
	"github.com/legalaipro/legal-ai-gateway/internal/infrastructure/extractor/spreadsheet"
)

type Format string

const (
	FormatPDF         Format = "pdf"
	FormatSpreadsheet Format = "spreadsheet"
	FormatText        Format = "text"
	FormatUnknown     Format = "unknown"
)

var ErrUnsupportedFormat = errors.New("unsupported document format")

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04")
)

// Observer receives one call per extraction attempt.
type Observer interface {
	ObserveExtraction(format string, chars int, err error)
}

type Dispatcher struct {
	pdf         ports.TextExtractor
	spreadsheet ports.TextExtractor
	text        ports.TextExtractor
	observer    Observer
}

func NewDispatcher(observer Observer) *Dispatcher {
	return &Dispatcher{
		pdf:         pdftext.NewExtractor(),
		spreadsheet: spreadsheet.NewExtractor(),
		text:        plaintext.NewExtractor(),
		observer:    observer,
	}
}

// DetectFormat only looks at magic bytes and UTF-8 validity.
func DetectFormat(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return FormatPDF
	case bytes.HasPrefix(data, zipMagic):
		return FormatSpreadsheet
	case utf8.Valid(data):
		return FormatText
	default:
		return FormatUnknown
	}
}

func (d *Dispatcher) Extract(ctx context.Context, doc domain.UploadedDocument) (string, error) {
	format := DetectFormat(doc.Data)
	text, err := d.extract(ctx, format, doc)
	if d.observer != nil {
		d.observer.ObserveExtraction(string(format), utf8.RuneCountInString(text), err)
	}
	return text, err
}

func (d *Dispatcher) extract(ctx context.Context, format Format, doc domain.UploadedDocument) (string, error) {
	switch format {
	case FormatPDF:
		return d.pdf.Extract(ctx, doc)
	case FormatSpreadsheet:
		text, err := d.spreadsheet.Extract(ctx, doc)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
		return text, nil
	case FormatText:
		return d.text.Extract(ctx, doc)
	default:
		return "", fmt.Errorf("%w: %q (%s)", ErrUnsupportedFormat, doc.Filename, doc.MimeType)
	}
}
