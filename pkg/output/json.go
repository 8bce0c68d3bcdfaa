package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sdejongh/samplestage/pkg/models"
)

// JSONFormatter emits a single JSON document describing the run,
// intended for automation and scripting
type JSONFormatter struct {
	writer io.Writer
	events []JSONEvent
}

// JSONEvent represents one per-file event in the JSON output
type JSONEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Name      string    `json:"name,omitempty"`
	Action    string    `json:"action,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Bytes     int64     `json:"bytes,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// JSONReport is the top-level document written at completion
type JSONReport struct {
	OperationID string      `json:"operation_id"`
	SourcePath  string      `json:"source_path"`
	DestPath    string      `json:"dest_path"`
	DryRun      bool        `json:"dry_run"`
	Status      string      `json:"status"`
	DurationMs  int64       `json:"duration_ms"`
	Stats       JSONStats   `json:"stats"`
	Events      []JSONEvent `json:"events"`
}

// JSONStats mirrors models.Statistics with JSON field names
type JSONStats struct {
	FilesScanned     int   `json:"files_scanned"`
	DestFilesIndexed int   `json:"dest_files_indexed"`
	FilesCopied      int   `json:"files_copied"`
	FilesOverwritten int   `json:"files_overwritten"`
	FilesSkipped     int   `json:"files_skipped"`
	FilesErrored     int   `json:"files_errored"`
	BytesCopied      int64 `json:"bytes_copied"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, totalFiles int, totalBytes int64) error {
	f.writer = writer
	return nil
}

// Progress records an event for the final document
func (f *JSONFormatter) Progress(update ProgressUpdate) error {
	if update.Type == "file_start" {
		return nil
	}

	event := JSONEvent{
		Timestamp: time.Now().UTC(),
		Type:      update.Type,
		Name:      update.Name,
		Action:    string(update.Action),
		Reason:    update.Reason,
		Bytes:     update.BytesWritten,
	}
	if update.Error != nil {
		event.Error = update.Error.Error()
	}

	f.events = append(f.events, event)
	return nil
}

// Complete writes the full report document
func (f *JSONFormatter) Complete(report *models.StageReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	doc := JSONReport{
		OperationID: report.OperationID,
		SourcePath:  report.SourcePath,
		DestPath:    report.DestPath,
		DryRun:      report.DryRun,
		Status:      string(report.Status),
		DurationMs:  report.Duration.Milliseconds(),
		Stats: JSONStats{
			FilesScanned:     report.Stats.FilesScanned,
			DestFilesIndexed: report.Stats.DestFilesIndexed,
			FilesCopied:      report.Stats.FilesCopied,
			FilesOverwritten: report.Stats.FilesOverwritten,
			FilesSkipped:     report.Stats.FilesSkipped,
			FilesErrored:     report.Stats.FilesErrored,
			BytesCopied:      report.Stats.BytesCopied,
		},
		Events: f.events,
	}

	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Error records a run-level error event
func (f *JSONFormatter) Error(err error) error {
	f.events = append(f.events, JSONEvent{
		Timestamp: time.Now().UTC(),
		Type:      "error",
		Error:     err.Error(),
	})
	return nil
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
