// Package extract turns an uploaded credit report PDF into plain text.
//
// We use the ledongthuc/pdf library — a pure Go implementation, no CGO or
// external dependencies required. This makes deployment simpler (just a
// single binary).
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor wraps extraction in a method so callers can inject it behind
// an interface (and tests can substitute a stub).
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor { return &Extractor{} }

// Extract implements the extraction service method on top of the
// package-level function.
func (*Extractor) Extract(data []byte) (*Result, error) { return Extract(data) }

// Result holds the output from a PDF text extraction.
type Result struct {
	Text      string // Extracted text content
	PageCount int    // Number of pages
	WordCount int    // Word count
}

// Extract reads a PDF from the given bytes and extracts all text content.
//
// Go Pattern: We accept a byte slice rather than a filename because the
// data may come from an HTTP upload (in memory) or a stored document.
// The pdf library requires io.ReaderAt for random access to the PDF
// structure, which bytes.Reader provides.
func Extract(data []byte) (*Result, error) {
	reader := bytes.NewReader(data)
	size := int64(len(data))

	pdfReader, err := pdf.NewReader(reader, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	pageCount := pdfReader.NumPage()
	if pageCount == 0 {
		return &Result{}, nil
	}

	var allText strings.Builder
	for i := 1; i <= pageCount; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Don't fail — some pages may be image-only scans
			continue
		}

		if allText.Len() > 0 {
			allText.WriteString("\n")
		}
		allText.WriteString(strings.TrimSpace(text))
	}

	extractedText := strings.TrimSpace(allText.String())

	return &Result{
		Text:      extractedText,
		PageCount: pageCount,
		WordCount: len(strings.Fields(extractedText)),
	}, nil
}

// ValidatePDF checks if the data looks like a valid PDF by checking the magic bytes.
func ValidatePDF(data []byte) bool {
	// PDF files start with "%PDF-"
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}
