package domain

const (
	FieldPDF      = "pdf"
	FieldContract = "contract"
)

// UploadedDocument lives only for the duration of one request.
type UploadedDocument struct {
	FieldName string
	Filename  string
	MimeType  string
	Data      []byte
}

type AnalysisResult struct {
	ExtractedText string `json:"extractedText"`
	ModelAnswer   string `json:"modelAnswer"`
}
