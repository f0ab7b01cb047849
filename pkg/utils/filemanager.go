// =============================================================================
// samcut - File Utilities
// =============================================================================
//
// This module provides small file helpers shared by the output writers and
// the pipeline:
//   - Output file naming (timestamp and UUID placeholders)
//   - Reject log generation for lines skipped under on_error: skip
//   - File and directory checks
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE NAMING
// =============================================================================

// GenerateOutputFileName expands a file name format.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               {<key>}     - Any key from params
//   - params: A map of placeholder values.
//   - ext: The required extension, including the dot (e.g. ".xlsx").
//
// RETURNS:
//   - The generated file name.
//
// EXAMPLE:
//   format: "samcut_{timestamp}_{uuid}"
//   output: "samcut_20240115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890.xlsx"
func GenerateOutputFileName(format string, params map[string]string, ext string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}

	return result
}

// =============================================================================
// REJECT LOG
// =============================================================================

// RejectEntry is one input line skipped because it failed to parse.
type RejectEntry struct {
	// LineNumber is the 1-based input line number.
	LineNumber int

	// Kind is the error classification (e.g. "TooFewFields").
	Kind string

	// Message is the full error message.
	Message string

	// Line is the raw input line.
	Line string
}

// WriteRejectLog writes skipped lines to path.
//
// PARAMETERS:
//   - entries: The skipped lines, in input order.
//   - path: The file to create. Parent directories are created as needed.
//   - source: The input name shown in the log header.
//
// RETURNS:
//   - An error if writing fails.
//
// Each entry is a tab-separated line: line number, kind, message, raw line.
// The raw line comes last and may itself contain tabs.
func WriteRejectLog(entries []RejectEntry, path, source string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create reject log directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create reject log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "# samcut reject log\n# generated: %s\n# input: %s\n# rejected: %d\n",
		time.Now().Format("2006-01-02 15:04:05"),
		source,
		len(entries))

	for _, entry := range entries {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\n", entry.LineNumber, entry.Kind, entry.Message, entry.Line)
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush reject log: %w", err)
	}

	return file.Close()
}

// =============================================================================
// FILE CHECKS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path names an existing directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
