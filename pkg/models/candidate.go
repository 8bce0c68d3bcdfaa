package models

import (
	"time"
)

// Candidate represents an audio file found in the source tree that may
// need to be copied into staging
type Candidate struct {
	// Name is the file name without any directory components
	Name string

	// RelativePath is the path relative to the source root
	RelativePath string

	// AbsolutePath is the full path on the filesystem
	AbsolutePath string

	// Ext is the lower-cased file extension including the dot
	Ext string

	// Size in bytes
	Size int64

	// ModTime is the last modification time
	ModTime time.Time

	// Permissions are the file mode bits
	Permissions uint32
}

// Action represents what the copier decided to do with a candidate
type Action string

const (
	// ActionCopy copies the candidate into staging
	ActionCopy Action = "copy"
	// ActionOverwrite replaces an existing staging file with the candidate
	ActionOverwrite Action = "overwrite"
	// ActionSkip leaves the candidate alone (duplicate at destination)
	ActionSkip Action = "skip"
)

// Decision is the outcome of running the duplicate check for one candidate
type Decision struct {
	Candidate *Candidate
	Action    Action
	Reason    string
}

// FileResult records what actually happened to a candidate during a run
type FileResult struct {
	Candidate   *Candidate
	Action      Action
	Reason      string
	Error       error
	BytesCopied int64
	Duration    time.Duration
}
