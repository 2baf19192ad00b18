// Package spreadsheet extracts cell text from OOXML workbooks.
package spreadsheet

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract renders each sheet in workbook order, one line per row with
// tab-separated cells. Sheets are separated by a blank line.
func (e *Extractor) Extract(ctx context.Context, doc domain.UploadedDocument) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(doc.Data))
	if err != nil {
		return "", fmt.Errorf("open workbook %q: %w", doc.Filename, err)
	}
	defer workbook.Close()

	sections := make([]string, 0)
	for _, sheet := range workbook.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %q: %w", sheet, err)
		}

		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			line := strings.TrimRight(strings.Join(row, "\t"), "\t ")
			if line == "" {
				continue
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			continue
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	return strings.Join(sections, "\n\n"), nil
}
