package models

import (
	"time"
)

// StagingDirName is the fixed subfolder of the destination root where
// newly copied files are placed prior to human curation
const StagingDirName = "staging"

// DefaultExtensions is the audio file extension allow-list applied when
// no override is configured. Matching is case-insensitive.
var DefaultExtensions = []string{".wav", ".mp3", ".aiff"}

// StageOperation represents a single staging run configuration
type StageOperation struct {
	ID              string
	SourcePath      string
	DestPath        string
	Extensions      []string
	ExcludePatterns []string
	DryRun          bool
	BandwidthLimit  int64 // bytes per second, 0 = unlimited
	BufferSize      int
	CreatedAt       time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
}

// Validate checks if the operation configuration is valid
func (op *StageOperation) Validate() error {
	if op.SourcePath == "" {
		return &ValidationError{Field: "SourcePath", Message: "source path is required"}
	}
	if op.DestPath == "" {
		return &ValidationError{Field: "DestPath", Message: "destination path is required"}
	}
	if len(op.Extensions) == 0 {
		return &ValidationError{Field: "Extensions", Message: "at least one extension is required"}
	}
	if op.BufferSize < 1024 {
		return &ValidationError{Field: "BufferSize", Message: "buffer size must be at least 1024 bytes"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
