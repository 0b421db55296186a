// Package cache persists analysis artifacts on disk, keyed by analysis ID.
//
// Layout: one directory per analysis ID under the cache root, holding two
// sibling JSON files — analysis.json (the AnalysisRecord) and charts.json
// (the ChartSet). An entry only counts as cached when BOTH files are present
// and parse cleanly; a partial pair is a miss, never a hit.
//
// Go Pattern: Sentinel errors (ErrMiss) let callers distinguish "not there
// yet, go compute it" from real I/O or corruption failures with errors.Is.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/concerro/ScoreWise/internal/models"
)

const (
	analysisFile = "analysis.json"
	chartsFile   = "charts.json"
)

// ErrMiss reports that no complete cache entry exists for an analysis ID.
var ErrMiss = fmt.Errorf("cache miss")

// Cache is a disk-backed artifact store.
type Cache struct {
	root string
}

// New creates a cache rooted at dir, creating the directory if needed.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache root: %w", err)
	}
	return &Cache{root: dir}, nil
}

// Root returns the cache root directory.
func (c *Cache) Root() string { return c.root }

// Get loads the record and chart set for an analysis ID.
//
// Returns ErrMiss when either file is absent — a half-written entry must
// never surface as a hit. A file that exists but does not parse is NOT a
// miss: corrupted cache data is a hard error so it can't be silently
// recomputed over (the entry is supposed to be immutable).
func (c *Cache) Get(analysisID string) (*models.AnalysisRecord, models.ChartSet, error) {
	analysisPath := filepath.Join(c.root, analysisID, analysisFile)
	chartsPath := filepath.Join(c.root, analysisID, chartsFile)

	analysisData, err := os.ReadFile(analysisPath)
	if os.IsNotExist(err) {
		return nil, nil, ErrMiss
	} else if err != nil {
		return nil, nil, fmt.Errorf("failed to read cached analysis: %w", err)
	}

	chartsData, err := os.ReadFile(chartsPath)
	if os.IsNotExist(err) {
		return nil, nil, ErrMiss
	} else if err != nil {
		return nil, nil, fmt.Errorf("failed to read cached charts: %w", err)
	}

	var record models.AnalysisRecord
	if err := json.Unmarshal(analysisData, &record); err != nil {
		return nil, nil, fmt.Errorf("corrupted cache entry %s/%s: %w", analysisID, analysisFile, err)
	}

	var charts models.ChartSet
	if err := json.Unmarshal(chartsData, &charts); err != nil {
		return nil, nil, fmt.Errorf("corrupted cache entry %s/%s: %w", analysisID, chartsFile, err)
	}

	return &record, charts, nil
}

// Put writes both artifacts for an analysis ID, creating its directory.
// Callers only Put after the full extract→analyze→chart pipeline succeeds,
// so the entry is complete or absent — never partial by design of the
// calling sequence. Concurrent duplicate writes are last-write-wins.
func (c *Cache) Put(analysisID string, record *models.AnalysisRecord, charts models.ChartSet) error {
	dir := filepath.Join(c.root, analysisID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache entry dir: %w", err)
	}

	analysisData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}
	chartsData, err := json.Marshal(charts)
	if err != nil {
		return fmt.Errorf("failed to marshal charts: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, analysisFile), analysisData, 0o644); err != nil {
		return fmt.Errorf("failed to write analysis: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, chartsFile), chartsData, 0o644); err != nil {
		return fmt.Errorf("failed to write charts: %w", err)
	}

	return nil
}

// Remove deletes the entry for an analysis ID. Removing a missing entry is
// not an error.
func (c *Cache) Remove(analysisID string) error {
	return os.RemoveAll(filepath.Join(c.root, analysisID))
}

// Sweep deletes entries whose directories were last modified before cutoff.
// Returns the number of entries removed. Used by the retention janitor.
func (c *Cache) Sweep(cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache root: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.RemoveAll(filepath.Join(c.root, entry.Name())); err != nil {
				return removed, fmt.Errorf("failed to remove cache entry %s: %w", entry.Name(), err)
			}
			removed++
		}
	}

	return removed, nil
}
