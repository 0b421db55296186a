// Package exporter converts rendered analysis HTML into a PDF document.
//
// We shell out to wkhtmltopdf through the go-wkhtmltopdf wrapper, the same
// way the rest of the app treats heavyweight external tools: the binary path
// comes from config (with common-location discovery as the fallback) and a
// missing binary is a per-request failure, not a startup failure.
package exporter

import (
	"fmt"
	"os"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// Exporter renders HTML to PDF files.
type Exporter struct {
	binaryPath string
}

// New creates an exporter. binaryPath may be empty, in which case the
// wrapper falls back to $PATH lookup at conversion time.
func New(binaryPath string) *Exporter {
	if binaryPath != "" {
		wkhtmltopdf.SetPath(binaryPath)
	}
	return &Exporter{binaryPath: binaryPath}
}

// IsConfigured reports whether a wkhtmltopdf binary was located.
func (e *Exporter) IsConfigured() bool { return e.binaryPath != "" }

// Convert renders the HTML document to a temporary PDF file and returns its
// path. The caller owns the file and must remove it after the response has
// been sent (success or failure).
func (e *Exporter) Convert(html string) (string, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return "", fmt.Errorf("wkhtmltopdf unavailable: %w", err)
	}

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return "", fmt.Errorf("PDF conversion failed: %w", err)
	}

	tmp, err := os.CreateTemp("", "credit_analysis_*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp PDF: %w", err)
	}

	if _, err := tmp.Write(pdfg.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write temp PDF: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp PDF: %w", err)
	}

	return tmp.Name(), nil
}
