// =============================================================================
// samcut - XLSX Writer
// =============================================================================
//
// This module writes rows into a single worksheet using the excelize stream
// writer, so memory stays flat however many records are written. The
// workbook is saved when the writer is closed.
//
// =============================================================================

package output

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/samcut/pkg/utils"
)

// DefaultSheet is the worksheet XLSX output is written to.
const DefaultSheet = "samcut"

// xlsxNameFormat names workbooks created inside an output directory.
const xlsxNameFormat = "samcut_{timestamp}_{uuid}"

// XLSXWriter streams rows into a single worksheet. Every field is written as
// a text cell so values like "0001" or "1e5" survive unchanged.
type XLSXWriter struct {
	file   *excelize.File
	stream *excelize.StreamWriter
	path   string
	row    int
}

// NewXLSXWriter creates a workbook that is saved to path on Close. If path is
// an existing directory a unique file name is generated inside it.
func NewXLSXWriter(path, sheet string) (*XLSXWriter, error) {
	if utils.IsDir(path) {
		path = filepath.Join(path, utils.GenerateOutputFileName(xlsxNameFormat, nil, ".xlsx"))
	}
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	if first := f.GetSheetName(0); first != sheet {
		if err := f.SetSheetName(first, sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to name worksheet: %w", err)
		}
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create stream writer: %w", err)
	}

	return &XLSXWriter{file: f, stream: sw, path: path}, nil
}

// Path returns the file the workbook is saved to.
func (x *XLSXWriter) Path() string {
	return x.path
}

// WriteHeader writes the header row.
func (x *XLSXWriter) WriteHeader(names []string) error {
	return x.writeRow(names)
}

// WriteRow writes one record.
func (x *XLSXWriter) WriteRow(values []string) error {
	return x.writeRow(values)
}

func (x *XLSXWriter) writeRow(values []string) error {
	x.row++
	cell, err := excelize.CoordinatesToCellName(1, x.row)
	if err != nil {
		return err
	}

	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := x.stream.SetRow(cell, cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", x.row, err)
	}
	return nil
}

// Close flushes the stream and saves the workbook.
func (x *XLSXWriter) Close() error {
	defer x.file.Close()

	if err := x.stream.Flush(); err != nil {
		return fmt.Errorf("failed to flush worksheet: %w", err)
	}
	if err := x.file.SaveAs(x.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
