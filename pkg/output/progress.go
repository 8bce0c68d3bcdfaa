package output

import (
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"

	"github.com/sdejongh/samplestage/pkg/models"
)

// ProgressFormatter shows a byte-based progress bar while copying
type ProgressFormatter struct {
	writer     io.Writer
	bar        *pb.ProgressBar
	totalFiles int
}

// NewProgressFormatter creates a new progress bar formatter
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{}
}

// Start initializes the progress bar
func (f *ProgressFormatter) Start(writer io.Writer, totalFiles int, totalBytes int64) error {
	if writer == nil {
		writer = os.Stdout
	}

	f.writer = writer
	f.totalFiles = totalFiles

	f.bar = pb.New64(totalBytes)
	f.bar.Set(pb.Bytes, true)
	f.bar.SetWriter(writer)
	f.bar.Start()

	return nil
}

// Progress advances the bar as files finish
func (f *ProgressFormatter) Progress(update ProgressUpdate) error {
	if f.bar == nil {
		return nil
	}

	switch update.Type {
	case "file_complete":
		if update.DryRun {
			// Dry runs write nothing, so credit the planned size to
			// keep the bar moving
			f.bar.Add64(update.TotalBytes)
		} else {
			f.bar.Add64(update.BytesWritten)
		}

	case "file_skip":
		// Skipped candidates still count toward the total so the bar
		// reaches 100% even when everything is a duplicate
		f.bar.Add64(update.TotalBytes)

	case "file_error":
		f.bar.Add64(update.TotalBytes)
	}

	return nil
}

// Complete stops the bar and prints the summary
func (f *ProgressFormatter) Complete(report *models.StageReport) error {
	if f.bar != nil {
		f.bar.Finish()
	}
	if f.writer == nil {
		f.writer = io.Discard
	}

	writeSummary(f.writer, report)
	return nil
}

// Error stops the bar before reporting
func (f *ProgressFormatter) Error(err error) error {
	if f.bar != nil {
		f.bar.Finish()
	}
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
