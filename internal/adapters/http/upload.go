package httpadapter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/legalaipro/legal-ai-gateway/internal/core/domain"
)

// multipartEnvelope leaves room for boundaries, part headers and ignored
// text fields on top of the document itself.
const multipartEnvelope = 1 << 20

// readUploadedDocument streams the multipart body part by part and keeps only
// the document in memory. A non-empty pdf part wins over a contract part;
// empty file parts are ignored, and a request without either yields a zero
// document.
func readUploadedDocument(w http.ResponseWriter, r *http.Request, limit int64) (domain.UploadedDocument, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return domain.UploadedDocument{}, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartEnvelope)
	reader, err := r.MultipartReader()
	if err != nil {
		return domain.UploadedDocument{}, domain.NewUserError(domain.ErrInvalidInput, "Invalid multipart body.")
	}

	var found domain.UploadedDocument
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return found, nil
		}
		if err != nil {
			return domain.UploadedDocument{}, uploadReadError(err, limit)
		}

		field := part.FormName()
		isDocument := (field == domain.FieldPDF || field == domain.FieldContract) && part.FileName() != ""
		if !isDocument || (found.FieldName == domain.FieldPDF) || (field == found.FieldName) {
			_, _ = io.Copy(io.Discard, part)
			_ = part.Close()
			continue
		}

		data, err := readLimited(part, limit)
		_ = part.Close()
		if err != nil {
			return domain.UploadedDocument{}, uploadReadError(err, limit)
		}
		if len(data) == 0 {
			continue
		}
		found = domain.UploadedDocument{
			FieldName: field,
			Filename:  part.FileName(),
			MimeType:  part.Header.Get("Content-Type"),
			Data:      data,
		}
	}
}

var errDocumentTooLarge = errors.New("document exceeds upload limit")

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if n > limit {
		return nil, errDocumentTooLarge
	}
	return buf.Bytes(), nil
}

func uploadReadError(err error, limit int64) error {
	var maxBytes *http.MaxBytesError
	if errors.Is(err, errDocumentTooLarge) || errors.As(err, &maxBytes) {
		return domain.NewUserError(
			domain.ErrPayloadTooLarge,
			fmt.Sprintf("Uploaded file exceeds the %d byte limit.", limit),
		)
	}
	return domain.NewUserError(domain.ErrInvalidInput, "Invalid multipart body.")
}
