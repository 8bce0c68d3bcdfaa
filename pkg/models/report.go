package models

import (
	"time"
)

// StageReport represents the results of a staging run
type StageReport struct {
	// Operation details
	OperationID string
	SourcePath  string
	DestPath    string
	DryRun      bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Per-file outcomes in processing order
	Results []FileResult

	// Errors encountered
	Errors []StageError

	// Overall status
	Status StageStatus
}

// Statistics holds staging run metrics
type Statistics struct {
	// Candidates found by the scanner
	FilesScanned int

	// Destination entries indexed for duplicate detection
	DestFilesIndexed int

	// Outcomes
	FilesCopied      int
	FilesOverwritten int
	FilesSkipped     int
	FilesErrored     int

	// Data transfer
	BytesScanned int64
	BytesCopied  int64
}

// StageStatus represents the overall result
type StageStatus string

const (
	// StatusSuccess indicates all operations completed successfully
	StatusSuccess StageStatus = "success"
	// StatusPartial indicates some files failed to copy
	StatusPartial StageStatus = "partial"
	// StatusFailed indicates the run failed
	StatusFailed StageStatus = "failed"
)

// StageError represents an error during a staging run
type StageError struct {
	FilePath  string
	Action    Action
	Error     string
	Timestamp time.Time
}

// ExitCode returns the process exit code for the run status
func (s StageStatus) ExitCode() int {
	if s == StatusSuccess {
		return 0
	}
	return 1
}
