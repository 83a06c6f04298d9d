// Package ingestion turns uploaded résumé files into plain text for the
// import pipeline. Supported formats: PDF, DOCX and plain text.
package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ErrUnsupportedFormat is returned for MIME types the extractor cannot read.
type ErrUnsupportedFormat struct {
	MIME string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.MIME)
}

// ExtractText extracts plain text from résumé file bytes based on the
// declared MIME type. The result is cleaned and normalized.
func ExtractText(mimeType string, data []byte) (string, error) {
	// Strip parameters like "; charset=utf-8"
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	mimeType = strings.TrimSpace(strings.ToLower(mimeType))

	var text string
	var err error
	switch mimeType {
	case "text/plain":
		text = string(data)
	case "application/pdf":
		text, err = extractPDFText(data)
	case mimeDocx:
		text, err = extractDocxText(data)
	default:
		return "", &ErrUnsupportedFormat{MIME: mimeType}
	}
	if err != nil {
		return "", err
	}

	return CleanText(text), nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
