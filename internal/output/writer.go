// =============================================================================
// samcut - Output Writers
// =============================================================================
//
// This module writes resolved rows to their destination. The pipeline hands
// each writer an optional header row, then one row per parsed record, then
// calls Close.
//
// WRITERS:
//   - DelimitedWriter : text rows joined by the configured delimiter
//   - XLSXWriter      : one spreadsheet row per record (see xlsx.go)
//
// =============================================================================

package output

import (
	"bufio"
	"io"

	"github.com/ginjaninja78/samcut/internal/fields"
)

// RowWriter receives output rows in order.
type RowWriter interface {
	// WriteHeader writes the row of requested field names.
	WriteHeader(names []string) error

	// WriteRow writes the resolved values of one record.
	WriteRow(values []string) error

	// Close flushes buffered output and releases resources.
	Close() error
}

// =============================================================================
// DELIMITED TEXT
// =============================================================================

// DelimitedWriter writes rows as delimiter-joined lines.
type DelimitedWriter struct {
	w     *bufio.Writer
	delim rune
}

// NewDelimitedWriter buffers writes to w. Close flushes but does not close w.
func NewDelimitedWriter(w io.Writer, delim rune) *DelimitedWriter {
	return &DelimitedWriter{
		w:     bufio.NewWriter(w),
		delim: delim,
	}
}

// WriteHeader writes the header row.
func (d *DelimitedWriter) WriteHeader(names []string) error {
	return d.writeLine(fields.HeaderRow(names, d.delim))
}

// WriteRow writes one record.
func (d *DelimitedWriter) WriteRow(values []string) error {
	return d.writeLine(fields.Join(values, d.delim))
}

func (d *DelimitedWriter) writeLine(line string) error {
	if _, err := d.w.WriteString(line); err != nil {
		return err
	}
	return d.w.WriteByte('\n')
}

// Close flushes buffered rows.
func (d *DelimitedWriter) Close() error {
	return d.w.Flush()
}
