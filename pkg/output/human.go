package output

import (
	"fmt"
	"io"
	"time"

	"github.com/sdejongh/samplestage/pkg/models"
)

// HumanFormatter formats run output in human-readable form
type HumanFormatter struct {
	writer     io.Writer
	totalFiles int
	totalBytes int64
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, totalFiles int, totalBytes int64) error {
	f.writer = writer
	f.totalFiles = totalFiles
	f.totalBytes = totalBytes

	if writer != nil {
		fmt.Fprintf(writer, "Found %d audio files (%s) to consider\n",
			totalFiles, formatBytes(totalBytes))
	}

	return nil
}

// Progress reports per-file progress
func (f *HumanFormatter) Progress(update ProgressUpdate) error {
	if f.writer == nil {
		return nil
	}

	prefix := ""
	if update.DryRun {
		prefix = "[dry-run] "
	}

	switch update.Type {
	case "file_skip":
		fmt.Fprintf(f.writer, "[%d/%d] %s- %s: %s\n",
			update.CurrentFile, f.totalFiles, prefix, update.Name, update.Reason)

	case "file_complete":
		verb := "copied"
		if update.Action == models.ActionOverwrite {
			verb = "overwrote"
		}
		if update.DryRun {
			verb = "would copy"
			if update.Action == models.ActionOverwrite {
				verb = "would overwrite"
			}
		}
		fmt.Fprintf(f.writer, "[%d/%d] %s✓ %s %s (%s)\n",
			update.CurrentFile, f.totalFiles, prefix, verb,
			update.Name, formatBytes(update.TotalBytes))

	case "file_error":
		fmt.Fprintf(f.writer, "[%d/%d] ✗ %s: %v\n",
			update.CurrentFile, f.totalFiles, update.Name, update.Error)
	}

	return nil
}

// Complete finalizes output and displays the summary
func (f *HumanFormatter) Complete(report *models.StageReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	writeSummary(f.writer, report)
	return nil
}

// Error reports a run-level error
func (f *HumanFormatter) Error(err error) error {
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// writeSummary prints the end-of-run summary shared by the human and
// progress formatters
func writeSummary(w io.Writer, report *models.StageReport) {
	fmt.Fprintf(w, "\n")
	if report.DryRun {
		fmt.Fprintf(w, "Dry run completed in %s (no files written)\n", report.Duration.Round(time.Millisecond))
	} else {
		fmt.Fprintf(w, "Staging run completed in %s\n", report.Duration.Round(time.Millisecond))
	}
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Candidates scanned:   %d\n", report.Stats.FilesScanned)
	fmt.Fprintf(w, "  Destination indexed:  %d\n", report.Stats.DestFilesIndexed)
	fmt.Fprintf(w, "  Copied:               %d\n", report.Stats.FilesCopied)
	fmt.Fprintf(w, "  Overwritten:          %d\n", report.Stats.FilesOverwritten)
	fmt.Fprintf(w, "  Skipped:              %d\n", report.Stats.FilesSkipped)
	fmt.Fprintf(w, "  Errored:              %d\n", report.Stats.FilesErrored)
	fmt.Fprintf(w, "  Data copied:          %s\n", formatBytes(report.Stats.BytesCopied))
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Status: %s\n", report.Status)

	if len(report.Errors) > 0 {
		fmt.Fprintf(w, "\nErrors:\n")
		for _, e := range report.Errors {
			fmt.Fprintf(w, "  %s: %s\n", e.FilePath, e.Error)
		}
	}
}

// formatBytes formats bytes in human-readable form
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
