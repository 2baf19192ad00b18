package plaintext

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
)

var ErrBinaryContent = errors.New("content is not valid UTF-8 text")

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(ctx context.Context, doc domain.UploadedDocument) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw := doc.Data
	raw = trimBOM(raw)
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("read %q: %w", doc.Filename, ErrBinaryContent)
	}
	return strings.TrimSpace(string(raw)), nil
}

func trimBOM(raw []byte) []byte {
	if len(raw) >= 3 && raw[0] == 0xEF && raw[1] == 0xBB && raw[2] == 0xBF {
		return raw[3:]
	}
	return raw
}
