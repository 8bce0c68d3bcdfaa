package dedupe

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sdejongh/samplestage/pkg/models"
	"github.com/sdejongh/samplestage/pkg/storage"
)

// Entry is one representative existing file at the destination
type Entry struct {
	Name         string
	RelativePath string
	Size         int64
}

// Index maps file names to existing destination entries. It is built by
// walking the destination tree once per run and is never cached across
// runs. Files inside the staging subfolder are tracked separately
// because they are checked under a stricter policy.
type Index struct {
	library map[string]Entry // destination tree outside staging
	staging map[string]Entry // staging subfolder only
}

// BuildIndex walks the destination backend and indexes every file by
// name. A nil backend (destination does not exist yet) yields an empty
// index.
func BuildIndex(ctx context.Context, dest storage.Backend) (*Index, error) {
	idx := &Index{
		library: make(map[string]Entry),
		staging: make(map[string]Entry),
	}

	if dest == nil {
		return idx, nil
	}

	entries, err := dest.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to index destination: %w", err)
	}

	stagingPrefix := models.StagingDirName + string(filepath.Separator)

	for _, e := range entries {
		if e.IsDir {
			continue
		}

		entry := Entry{
			Name:         filepath.Base(e.RelativePath),
			RelativePath: e.RelativePath,
			Size:         e.Size,
		}

		if strings.HasPrefix(e.RelativePath, stagingPrefix) {
			idx.staging[entry.Name] = entry
		} else {
			idx.library[entry.Name] = entry
		}
	}

	return idx, nil
}

// Len returns the total number of indexed files
func (idx *Index) Len() int {
	return len(idx.library) + len(idx.staging)
}

// InLibrary returns the entry for name found outside staging, if any
func (idx *Index) InLibrary(name string) (Entry, bool) {
	e, ok := idx.library[name]
	return e, ok
}

// InStaging returns the entry for name found inside staging, if any
func (idx *Index) InStaging(name string) (Entry, bool) {
	e, ok := idx.staging[name]
	return e, ok
}
