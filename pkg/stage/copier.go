package stage

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sdejongh/samplestage/pkg/dedupe"
	"github.com/sdejongh/samplestage/pkg/logging"
	"github.com/sdejongh/samplestage/pkg/models"
	"github.com/sdejongh/samplestage/pkg/output"
	"github.com/sdejongh/samplestage/pkg/ratelimit"
	"github.com/sdejongh/samplestage/pkg/scan"
	"github.com/sdejongh/samplestage/pkg/storage"
)

// Engine orchestrates a staging run: scan the source, index the
// destination, then copy non-duplicate candidates into the staging
// subfolder one at a time
type Engine struct {
	source    storage.Backend
	dest      storage.Backend // nil when the destination does not exist yet (dry run)
	scanner   *scan.Scanner
	formatter output.Formatter
	logger    logging.Logger
	op        *models.StageOperation
	out       io.Writer
	limiter   *ratelimit.Limiter
}

// NewEngine creates a new staging engine. dest may be nil during a dry
// run against a destination that does not exist yet.
func NewEngine(
	source, dest storage.Backend,
	scanner *scan.Scanner,
	formatter output.Formatter,
	logger logging.Logger,
	op *models.StageOperation,
) *Engine {
	return &Engine{
		source:    source,
		dest:      dest,
		scanner:   scanner,
		formatter: formatter,
		logger:    logger,
		op:        op,
		out:       os.Stdout,
		limiter:   ratelimit.NewLimiter(op.BandwidthLimit),
	}
}

// SetOutput redirects formatter output, mainly for tests
func (e *Engine) SetOutput(w io.Writer) {
	e.out = w
}

// Run executes the staging operation sequentially: each candidate is
// checked and copied (or skipped) to completion before the next one is
// considered
func (e *Engine) Run(ctx context.Context) (*models.StageReport, error) {
	start := time.Now()
	e.op.StartedAt = &start
	logger := e.logger.WithFields(logging.Fields{"operation": e.op.ID})

	report := &models.StageReport{
		OperationID: e.op.ID,
		SourcePath:  e.op.SourcePath,
		DestPath:    e.op.DestPath,
		DryRun:      e.op.DryRun,
		StartTime:   start,
	}

	logger.Info(ctx, "starting staging run", logging.Fields{
		"source":  e.op.SourcePath,
		"dest":    e.op.DestPath,
		"dry_run": e.op.DryRun,
	})

	candidates, err := e.scanner.Scan(ctx, e.source)
	if err != nil {
		logger.Error(ctx, "scan failed", err, nil)
		return nil, err
	}

	index, err := dedupe.BuildIndex(ctx, e.dest)
	if err != nil {
		logger.Error(ctx, "destination indexing failed", err, nil)
		return nil, err
	}
	checker := dedupe.NewChecker(index)

	report.Stats.FilesScanned = len(candidates)
	report.Stats.DestFilesIndexed = index.Len()

	var totalBytes int64
	for _, c := range candidates {
		totalBytes += c.Size
	}
	report.Stats.BytesScanned = totalBytes

	e.formatter.Start(e.out, len(candidates), totalBytes)

	if !e.op.DryRun {
		if err := e.dest.MkdirAll(ctx, models.StagingDirName); err != nil {
			logger.Error(ctx, "failed to create staging directory", err, nil)
			return nil, err
		}
	}

	for i, candidate := range candidates {
		decision := checker.Check(candidate)
		e.process(ctx, logger, report, decision, i+1)
	}

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	e.op.CompletedAt = &report.EndTime

	if report.Stats.FilesErrored > 0 {
		report.Status = models.StatusPartial
	} else {
		report.Status = models.StatusSuccess
	}

	logger.Info(ctx, "staging run finished", logging.Fields{
		"copied":      report.Stats.FilesCopied,
		"overwritten": report.Stats.FilesOverwritten,
		"skipped":     report.Stats.FilesSkipped,
		"errored":     report.Stats.FilesErrored,
		"status":      report.Status,
	})

	e.formatter.Complete(report)

	return report, nil
}

// process handles a single candidate to completion
func (e *Engine) process(ctx context.Context, logger logging.Logger, report *models.StageReport, decision models.Decision, current int) {
	candidate := decision.Candidate
	fileStart := time.Now()

	result := models.FileResult{
		Candidate: candidate,
		Action:    decision.Action,
		Reason:    decision.Reason,
	}

	switch decision.Action {
	case models.ActionSkip:
		report.Stats.FilesSkipped++
		logger.Info(ctx, "skipping duplicate", logging.Fields{
			"name":   candidate.Name,
			"reason": decision.Reason,
		})
		e.formatter.Progress(output.ProgressUpdate{
			Type:        "file_skip",
			Name:        candidate.Name,
			Path:        candidate.RelativePath,
			Action:      decision.Action,
			Reason:      decision.Reason,
			TotalBytes:  candidate.Size,
			CurrentFile: current,
			DryRun:      e.op.DryRun,
		})

	case models.ActionCopy, models.ActionOverwrite:
		if decision.Action == models.ActionOverwrite {
			logger.Warn(ctx, "staged file will be overwritten", logging.Fields{
				"name":   candidate.Name,
				"reason": decision.Reason,
			})
		}

		if e.op.DryRun {
			e.recordSuccess(report, decision)
			logger.Info(ctx, "dry run, no copy performed", logging.Fields{
				"name":   candidate.Name,
				"action": decision.Action,
			})
			e.formatter.Progress(output.ProgressUpdate{
				Type:        "file_complete",
				Name:        candidate.Name,
				Path:        candidate.RelativePath,
				Action:      decision.Action,
				TotalBytes:  candidate.Size,
				CurrentFile: current,
				DryRun:      true,
			})
			break
		}

		if err := e.copyFile(ctx, candidate); err != nil {
			result.Error = err
			report.Stats.FilesErrored++
			report.Errors = append(report.Errors, models.StageError{
				FilePath:  candidate.RelativePath,
				Action:    decision.Action,
				Error:     err.Error(),
				Timestamp: time.Now(),
			})
			logger.Error(ctx, "copy failed", err, logging.Fields{"name": candidate.Name})
			e.formatter.Progress(output.ProgressUpdate{
				Type:        "file_error",
				Name:        candidate.Name,
				Path:        candidate.RelativePath,
				Action:      decision.Action,
				TotalBytes:  candidate.Size,
				CurrentFile: current,
				Error:       err,
			})
			break
		}

		e.recordSuccess(report, decision)
		report.Stats.BytesCopied += candidate.Size
		logger.Info(ctx, "copied to staging", logging.Fields{
			"name": candidate.Name,
			"size": candidate.Size,
		})
		e.formatter.Progress(output.ProgressUpdate{
			Type:         "file_complete",
			Name:         candidate.Name,
			Path:         candidate.RelativePath,
			Action:       decision.Action,
			BytesWritten: candidate.Size,
			TotalBytes:   candidate.Size,
			CurrentFile:  current,
		})
		result.BytesCopied = candidate.Size
	}

	result.Duration = time.Since(fileStart)
	report.Results = append(report.Results, result)
}

func (e *Engine) recordSuccess(report *models.StageReport, decision models.Decision) {
	if decision.Action == models.ActionOverwrite {
		report.Stats.FilesOverwritten++
	} else {
		report.Stats.FilesCopied++
	}
}

// copyFile copies one candidate's bytes and metadata into staging
func (e *Engine) copyFile(ctx context.Context, candidate *models.Candidate) error {
	reader, err := e.source.Read(ctx, candidate.RelativePath)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}
	defer reader.Close()

	var r io.Reader = bufio.NewReaderSize(reader, e.op.BufferSize)
	r = ratelimit.NewReader(ctx, r, e.limiter)

	meta := &storage.FileInfo{
		ModTime:     candidate.ModTime,
		Permissions: candidate.Permissions,
		Size:        candidate.Size,
	}

	stagingPath := filepath.Join(models.StagingDirName, candidate.Name)
	if err := e.dest.Write(ctx, stagingPath, r, candidate.Size, meta); err != nil {
		return fmt.Errorf("failed to write staging file: %w", err)
	}

	return nil
}
