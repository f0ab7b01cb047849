// =============================================================================
// samcut - Pipeline
// =============================================================================
//
// This module drives one extraction run: it pulls lines from a LineSource,
// assembles each into a field space, resolves the requested fields and hands
// the row to a RowWriter.
//
// PROCESSING STEPS:
//   1. Expand the requested field list (the "std" alias) once
//   2. Write the header row, if configured
//   3. For every input line:
//      a. Header lines ('@') are counted and skipped
//      b. Malformed lines abort the run or are skipped, per on_error
//      c. Parsed records are resolved and written; the record index advances
//   4. Write the reject log, if configured. A run that fails partway still
//      writes the lines rejected so far.
//
// The record index "n" counts successfully parsed data lines only, so header
// lines and skipped lines never advance it.
//
// =============================================================================

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ginjaninja78/samcut/internal/config"
	"github.com/ginjaninja78/samcut/internal/fields"
	"github.com/ginjaninja78/samcut/internal/input"
	"github.com/ginjaninja78/samcut/internal/logging"
	"github.com/ginjaninja78/samcut/internal/output"
	"github.com/ginjaninja78/samcut/internal/record"
	"github.com/ginjaninja78/samcut/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the outcome of a run.
type Result struct {
	// Fields is the expanded list of output columns.
	Fields []string

	// Stats contains processing statistics.
	Stats Stats

	// Rejected lists the lines skipped under on_error: skip.
	Rejected []utils.RejectEntry
}

// Stats contains statistics about a run.
type Stats struct {
	// LinesRead is the number of input lines consumed.
	LinesRead int

	// HeaderLines is the number of '@' lines skipped.
	HeaderLines int

	// RecordsWritten is the number of output rows, excluding the header row.
	RecordsWritten int

	// LinesSkipped is the number of malformed lines skipped.
	LinesSkipped int

	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// =============================================================================
// PIPELINE STRUCTURE
// =============================================================================

// Pipeline runs one extraction from a source to a sink.
type Pipeline struct {
	cfg    *config.Config
	src    input.LineSource
	sink   output.RowWriter
	logger logging.Logger

	// Source names the input in log messages and the reject log.
	Source string
}

// New creates a Pipeline. A nil logger discards log output.
//
// PARAMETERS:
//   - cfg: The run configuration (fields, format and error policy).
//   - src: The line source. The pipeline does not close it.
//   - sink: The row writer. The pipeline does not close it.
//   - logger: The run logger.
//
// RETURNS:
//   - A new Pipeline instance.
func New(cfg *config.Config, src input.LineSource, sink output.RowWriter, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Pipeline{
		cfg:    cfg,
		src:    src,
		sink:   sink,
		logger: logger,
		Source: "stdin",
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run processes the source until it is exhausted, the context is cancelled,
// or a malformed line is met under on_error: abort.
//
// RETURNS:
//   - The run result. Stats are filled in even when an error is returned.
//   - A *record.FormatError when aborting on a malformed line, or any read,
//     write or context error.
func (p *Pipeline) Run(ctx context.Context) (result Result, err error) {
	start := time.Now()
	result = Result{Fields: fields.Expand(p.cfg.Fields)}
	defer func() { result.Stats.Elapsed = time.Since(start) }()
	defer func() {
		if werr := p.writeRejectLog(result.Rejected, err); werr != nil {
			err = errors.Join(err, werr)
		}
	}()

	format := p.cfg.Format()
	p.logger.Debugf("extracting %d fields from %s", len(result.Fields), p.Source)

	if format.Header {
		if err := p.sink.WriteHeader(result.Fields); err != nil {
			return result, fmt.Errorf("failed to write header row: %w", err)
		}
	}

	index := 1
	for p.src.Next() {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		result.Stats.LinesRead++
		line := p.src.Text()

		fs, aerr := record.Assemble(line, index)
		if errors.Is(aerr, record.ErrHeader) {
			result.Stats.HeaderLines++
			continue
		}

		var ferr *record.FormatError
		if errors.As(aerr, &ferr) {
			ferr.AtLine(p.src.LineNumber())
			if p.cfg.OnError != config.PolicySkip {
				return result, ferr
			}

			p.logger.Warnf("skipping %s", ferr)
			result.Stats.LinesSkipped++
			result.Rejected = append(result.Rejected, utils.RejectEntry{
				LineNumber: ferr.Line,
				Kind:       ferr.Kind.String(),
				Message:    ferr.Error(),
				Line:       line,
			})
			continue
		}
		if aerr != nil {
			return result, aerr
		}

		if err := p.sink.WriteRow(fields.Resolve(result.Fields, fs, format.Fill)); err != nil {
			return result, fmt.Errorf("failed to write record %d: %w", index, err)
		}
		result.Stats.RecordsWritten++
		index++
	}

	if err := p.src.Err(); err != nil {
		return result, fmt.Errorf("failed to read %s: %w", p.Source, err)
	}

	p.logger.Debugf("read %d lines: %d written, %d headers, %d skipped",
		result.Stats.LinesRead,
		result.Stats.RecordsWritten,
		result.Stats.HeaderLines,
		result.Stats.LinesSkipped)

	return result, nil
}

// writeRejectLog writes the reject log when one is configured. After a failed
// run it is written only if some lines were rejected.
func (p *Pipeline) writeRejectLog(rejected []utils.RejectEntry, runErr error) error {
	if p.cfg.RejectLog == "" || p.cfg.OnError != config.PolicySkip {
		return nil
	}
	if runErr != nil && len(rejected) == 0 {
		return nil
	}

	if err := utils.WriteRejectLog(rejected, p.cfg.RejectLog, p.Source); err != nil {
		return err
	}
	p.logger.Infof("wrote %d rejected lines to %s", len(rejected), p.cfg.RejectLog)
	return nil
}
