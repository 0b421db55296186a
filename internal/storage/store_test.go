package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestSanitizeFilename verifies filename sanitization.
// Go Pattern: Table-driven tests — each case is a struct with inputs
// and expected outputs. The test runner loops through them all.
func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "clean filename",
			input:    "report.pdf",
			expected: "report.pdf",
		},
		{
			name:     "path traversal stripped",
			input:    "../../etc/passwd",
			expected: "passwd",
		},
		{
			name:     "windows path traversal stripped",
			input:    "..\\..\\evil.pdf",
			expected: "evil.pdf",
		},
		{
			name:     "special characters replaced",
			input:    "my report: final?.pdf",
			expected: "my report- final-.pdf",
		},
		{
			name:     "hidden file loses leading dot",
			input:    ".hidden.pdf",
			expected: "hidden.pdf",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "long name gets truncated",
			input:    strings.Repeat("a", 200),
			expected: strings.Repeat("a", 100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeFilename(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSaveAndRead(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	stored, err := s.Save("report.pdf", strings.NewReader("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if stored != "report.pdf" {
		t.Errorf("stored name = %q, want %q", stored, "report.pdf")
	}
	if !s.Exists("report.pdf") {
		t.Error("Exists = false after Save")
	}

	data, err := s.Read("report.pdf")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "%PDF-1.4 fake" {
		t.Errorf("Read = %q, want original content", data)
	}
}

// TestSaveOverwrites covers the last-upload-wins rule.
func TestSaveOverwrites(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := s.Save("report.pdf", strings.NewReader("first")); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if _, err := s.Save("report.pdf", strings.NewReader("second")); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	data, err := s.Read("report.pdf")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("Read = %q, want %q", data, "second")
	}
}

func TestSweepRemovesOldDocuments(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := s.Save("old.pdf", strings.NewReader("old")); err != nil {
		t.Fatalf("Save old: %v", err)
	}
	if _, err := s.Save("fresh.pdf", strings.NewReader("fresh")); err != nil {
		t.Fatalf("Save fresh: %v", err)
	}

	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(filepath.Join(dir, "old.pdf"), past, past); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	removed, err := s.Sweep(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if removed != 1 {
		t.Errorf("Sweep removed %d, want 1", removed)
	}
	if s.Exists("old.pdf") {
		t.Error("old.pdf survived sweep")
	}
	if !s.Exists("fresh.pdf") {
		t.Error("fresh.pdf was swept")
	}
}
