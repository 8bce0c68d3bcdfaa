package output

import (
	"io"

	"github.com/sdejongh/samplestage/pkg/models"
)

// ProgressUpdate represents a notification during a staging run
type ProgressUpdate struct {
	Type         string // "file_start", "file_complete", "file_skip", "file_error"
	Name         string
	Path         string
	Action       models.Action
	Reason       string
	BytesWritten int64
	TotalBytes   int64
	CurrentFile  int
	TotalFiles   int
	DryRun       bool
	Error        error
}

// Formatter defines the interface for run output.
// Implementations include human-readable, progress-bar, and JSON
// formatters.
type Formatter interface {
	// Start initializes the formatter for a new run
	Start(writer io.Writer, totalFiles int, totalBytes int64) error

	// Progress reports per-file progress during the run
	Progress(update ProgressUpdate) error

	// Complete finalizes output and displays the summary
	Complete(report *models.StageReport) error

	// Error reports a run-level error
	Error(err error) error

	// Name returns the formatter name
	Name() string
}
