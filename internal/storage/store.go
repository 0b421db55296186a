// Package storage manages the upload directory where credit reports live.
//
// Documents are stored under their sanitized original filename; uploading
// the same name again overwrites (last upload wins). The store never deletes
// on its own — retention is the janitor's job via Sweep.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DocumentStore is a flat directory of uploaded files.
type DocumentStore struct {
	dir string
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*DocumentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DocumentStore{dir: dir}, nil
}

// Dir returns the store's directory.
func (s *DocumentStore) Dir() string { return s.dir }

// Save writes the uploaded content under the sanitized filename and returns
// the name it was stored as.
func (s *DocumentStore) Save(filename string, r io.Reader) (string, error) {
	name := SanitizeFilename(filename)
	if name == "" {
		return "", fmt.Errorf("filename %q sanitizes to nothing", filename)
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create stored document: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write stored document: %w", err)
	}
	return name, nil
}

// Path returns the on-disk path for a stored filename.
func (s *DocumentStore) Path(filename string) string {
	return filepath.Join(s.dir, SanitizeFilename(filename))
}

// Exists reports whether a stored document is still on disk.
func (s *DocumentStore) Exists(filename string) bool {
	info, err := os.Stat(s.Path(filename))
	return err == nil && !info.IsDir()
}

// Read returns the full contents of a stored document.
func (s *DocumentStore) Read(filename string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to read stored document: %w", err)
	}
	return data, nil
}

// Sweep deletes documents last modified before cutoff and returns how many
// were removed.
func (s *DocumentStore) Sweep(cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read upload dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
				return removed, fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
			}
			removed++
		}
	}
	return removed, nil
}

// SanitizeFilename strips path components and characters that aren't safe
// for filenames, keeping only the base name.
//
// Go Pattern: Keep it simple — take the base name to kill traversal
// attempts, replace unsafe characters with hyphens, and trim the result.
func SanitizeFilename(name string) string {
	// Normalize both separator styles before taking the base name, so
	// "..\\..\\evil.pdf" from a Windows browser can't sneak through.
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == "/" {
		return ""
	}

	replacer := strings.NewReplacer(
		":", "-", "*", "-", "?", "-", "\"", "-",
		"<", "-", ">", "-", "|", "-", "\n", " ", "\r", "",
	)
	name = replacer.Replace(name)

	// Collapse runs introduced by the replacements
	for strings.Contains(name, "  ") {
		name = strings.ReplaceAll(name, "  ", " ")
	}
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}

	name = strings.TrimSpace(name)
	name = strings.Trim(name, ".")

	if len(name) > 100 {
		name = name[:100]
	}
	return name
}
