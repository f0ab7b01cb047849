// =============================================================================
// samcut - Input Line Sources
// =============================================================================
//
// This module feeds SAM text lines to the pipeline one at a time. Input is a
// lazy, ordered, one-pass stream: nothing is buffered beyond the current line.
//
// SUPPORTED INPUTS:
//   - SAM text from stdin or a file
//   - gzip-compressed SAM text (plain gzip or BGZF), detected by magic bytes
//   - BAM, decoded with biogo/hts and rendered back to SAM text per record
//
// USAGE:
//   src, err := input.Open(path, os.Stdin, input.Options{})
//   if err != nil {
//       return err
//   }
//   defer src.Close()
//
//   for src.Next() {
//       line := src.Text()
//       // Process the line...
//   }
//
//   if err := src.Err(); err != nil {
//       return err
//   }
//
// =============================================================================

package input

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/hts/bam"
)

// MaxLineSize bounds a single input line. Long-read records with large
// sequence and quality strings routinely exceed bufio's 64 KiB default.
const MaxLineSize = 256 << 20

// gzipMagic is the leading two bytes of every gzip (and therefore BGZF) member.
var gzipMagic = []byte{0x1f, 0x8b}

// =============================================================================
// LINE SOURCE
// =============================================================================

// LineSource yields input lines in order.
type LineSource interface {
	// Next advances to the next line. It returns false at end of input or on
	// error; check Err afterwards.
	Next() bool

	// Text returns the current line without its terminator.
	Text() string

	// LineNumber returns the 1-based number of the current input line.
	LineNumber() int

	// Err returns the first read error, if any.
	Err() error

	// Close releases the underlying input.
	Close() error
}

// Options controls how Open interprets its input.
type Options struct {
	// BAM decodes the input as BAM. Paths ending in .bam imply it.
	BAM bool
}

// Open returns a LineSource for path. An empty path or "-" reads stdin.
//
// PARAMETERS:
//   - path: The input file, or "" / "-" for stdin.
//   - stdin: The reader used when path names stdin.
//   - opts: Input options.
//
// RETURNS:
//   - A LineSource positioned before the first line.
//   - An error if the file cannot be opened or its format is not recognised.
func Open(path string, stdin io.Reader, opts Options) (LineSource, error) {
	var (
		r      io.Reader = stdin
		closer io.Closer
	)
	if path != "" && path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		r, closer = file, file

		if strings.EqualFold(filepath.Ext(path), ".bam") {
			opts.BAM = true
		}
	}

	var (
		src LineSource
		err error
	)
	if opts.BAM {
		src, err = NewBAMSource(r)
	} else {
		src, err = newTextSourceAuto(r)
	}
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}

	if closer != nil {
		src = &closingSource{LineSource: src, closer: closer}
	}
	return src, nil
}

// closingSource closes the opened file along with the source.
type closingSource struct {
	LineSource
	closer io.Closer
}

func (c *closingSource) Close() error {
	err := c.LineSource.Close()
	if cerr := c.closer.Close(); err == nil {
		err = cerr
	}
	return err
}

// =============================================================================
// SAM TEXT
// =============================================================================

// TextSource reads SAM text line by line.
type TextSource struct {
	scanner    *bufio.Scanner
	closer     io.Closer
	line       string
	lineNumber int
	err        error
}

// NewTextSource reads uncompressed SAM text from r.
func NewTextSource(r io.Reader) *TextSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &TextSource{scanner: scanner}
}

// newTextSourceAuto sniffs r for a gzip header and decompresses if present.
func newTextSourceAuto(r io.Reader) (*TextSource, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if !bytes.Equal(head, gzipMagic) {
		return NewTextSource(br), nil
	}

	// Go's gzip reader follows multiple members, which covers BGZF blocks.
	gz, err := gzip.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip input: %w", err)
	}
	src := NewTextSource(gz)
	src.closer = gz
	return src, nil
}

// Next advances to the next line.
func (s *TextSource) Next() bool {
	if s.err != nil {
		return false
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			s.err = fmt.Errorf("error reading line %d: %w", s.lineNumber+1, err)
		}
		return false
	}
	s.lineNumber++
	s.line = s.scanner.Text()
	return true
}

// Text returns the current line.
func (s *TextSource) Text() string {
	return s.line
}

// LineNumber returns the current line number (1-indexed).
func (s *TextSource) LineNumber() int {
	return s.lineNumber
}

// Err returns any error that occurred while reading.
func (s *TextSource) Err() error {
	return s.err
}

// Close closes the decompressor, if any. The underlying reader is owned by
// the caller.
func (s *TextSource) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// =============================================================================
// BAM
// =============================================================================

// BAMSource decodes BAM records and renders each one as a SAM text line, so
// the same record assembler handles both formats. The BAM header produces no
// lines; LineNumber counts records.
type BAMSource struct {
	reader     *bam.Reader
	line       string
	lineNumber int
	err        error
}

// NewBAMSource opens a BAM stream. Decompression runs on a single goroutine.
func NewBAMSource(r io.Reader) (*BAMSource, error) {
	br, err := bam.NewReader(r, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to open BAM input: %w", err)
	}
	return &BAMSource{reader: br}, nil
}

// Next advances to the next record.
func (s *BAMSource) Next() bool {
	if s.err != nil {
		return false
	}

	rec, err := s.reader.Read()
	if err == io.EOF {
		return false
	}
	if err != nil {
		s.err = fmt.Errorf("error reading BAM record %d: %w", s.lineNumber+1, err)
		return false
	}

	text, err := rec.MarshalText()
	if err != nil {
		s.err = fmt.Errorf("error rendering BAM record %d: %w", s.lineNumber+1, err)
		return false
	}

	s.lineNumber++
	s.line = string(text)
	return true
}

// Text returns the current record as SAM text.
func (s *BAMSource) Text() string {
	return s.line
}

// LineNumber returns the current record number (1-indexed).
func (s *BAMSource) LineNumber() int {
	return s.lineNumber
}

// Err returns any error that occurred while reading.
func (s *BAMSource) Err() error {
	return s.err
}

// Close closes the BAM reader.
func (s *BAMSource) Close() error {
	return s.reader.Close()
}
