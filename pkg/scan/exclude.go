package scan

import (
	"path/filepath"
	"strings"
)

// shouldExclude checks if a relative path matches any exclude pattern.
// Patterns support:
//   - Simple glob patterns on the file name: *.asd, ._*
//   - Directory patterns: __MACOSX/, .stems/
//   - Path patterns: Packs/Demo/*
func shouldExclude(relativePath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	normalizedPath := filepath.ToSlash(relativePath)
	baseName := filepath.Base(relativePath)

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		normalizedPattern := filepath.ToSlash(pattern)

		// Directory pattern: matches the directory itself and anything below it
		if strings.HasSuffix(normalizedPattern, "/") {
			dirPattern := strings.TrimSuffix(normalizedPattern, "/")
			if normalizedPath == dirPattern ||
				strings.HasPrefix(normalizedPath, dirPattern+"/") ||
				strings.Contains(normalizedPath, "/"+dirPattern+"/") {
				return true
			}
			continue
		}

		if strings.Contains(normalizedPattern, "/") {
			// Pattern applies to the full relative path
			if matched, _ := filepath.Match(normalizedPattern, normalizedPath); matched {
				return true
			}
			continue
		}

		// Pattern applies to the file name only
		if matched, _ := filepath.Match(normalizedPattern, baseName); matched {
			return true
		}
	}

	return false
}
