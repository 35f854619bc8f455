package providers

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ResumeParser extracts the plain text of an uploaded PDF resume.
type ResumeParser interface {
	ExtractText(path string) (string, error)
}

type pdfResumeParser struct{}

// NewResumeParser creates a PDF-backed ResumeParser.
func NewResumeParser() ResumeParser {
	return &pdfResumeParser{}
}

func (p *pdfResumeParser) ExtractText(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF '%s': %w", path, err)
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract text from PDF '%s': %w", path, err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, content); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("PDF '%s' contains no extractable text", path)
	}
	return text, nil
}
