package scan

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sdejongh/samplestage/pkg/models"
	"github.com/sdejongh/samplestage/pkg/storage"
)

// Scanner finds audio files under a source tree whose extension is in
// the configured allow-list
type Scanner struct {
	extensions map[string]bool
	exclude    []string
}

// New creates a scanner for the given extension allow-list. Extensions
// are matched case-insensitively and must include the leading dot.
func New(extensions []string, exclude []string) *Scanner {
	set := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = true
	}
	return &Scanner{extensions: set, exclude: exclude}
}

// Scan walks the source backend recursively and returns every matching
// file as a candidate, in traversal order. I/O errors propagate to the
// caller.
func (s *Scanner) Scan(ctx context.Context, source storage.Backend) ([]*models.Candidate, error) {
	entries, err := source.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to scan source: %w", err)
	}

	var candidates []*models.Candidate
	for _, entry := range entries {
		if entry.IsDir {
			continue
		}
		if shouldExclude(entry.RelativePath, s.exclude) {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.RelativePath))
		if !s.extensions[ext] {
			continue
		}

		candidates = append(candidates, &models.Candidate{
			Name:         filepath.Base(entry.RelativePath),
			RelativePath: entry.RelativePath,
			AbsolutePath: entry.Path,
			Ext:          ext,
			Size:         entry.Size,
			ModTime:      entry.ModTime,
			Permissions:  entry.Permissions,
		})
	}

	return candidates, nil
}
