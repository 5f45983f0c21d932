package files

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

// Workbook wraps an open xlsx file and exposes the narrow surface the
// aggregation run needs: sheet enumeration and streaming row access.
type Workbook struct {
	path string
	file *excelize.File
}

// OpenWorkbook opens the workbook at path for reading.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &Workbook{path: path, file: f}, nil
}

// Path returns the file path the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// SheetNames returns the workbook's sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Rows returns a streaming reader over the named sheet, starting at row 1.
// The header row is included; the aggregation engine discards it. The
// caller must Close the reader when done.
func (w *Workbook) Rows(sheet string) (*SheetRows, error) {
	rows, err := w.file.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet %q of %s: %w", sheet, w.path, err)
	}
	return &SheetRows{rows: rows}, nil
}

// HeaderRow reads the first row of the named sheet. Used by the inspect
// command to help users pick column letters.
func (w *Workbook) HeaderRow(sheet string) ([]string, error) {
	rows, err := w.Rows(sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	header, err := rows.Next()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return header, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	if err := w.file.Close(); err != nil {
		slog.Warn("failed to close workbook", slog.String("path", w.path), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// SheetRows streams the rows of one sheet in file order. It satisfies the
// aggregation engine's RowReader contract: Next returns io.EOF once the
// sheet is exhausted, and any read fault surfaces as the error of the row
// it interrupted.
type SheetRows struct {
	rows *excelize.Rows
}

// Next returns the next row's cell values. Absent trailing cells are simply
// missing from the slice; the classifier treats out-of-range reads as empty.
func (r *SheetRows) Next() ([]string, error) {
	if !r.rows.Next() {
		if err := r.rows.Error(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	return r.rows.Columns()
}

// Close releases the stream.
func (r *SheetRows) Close() error {
	return r.rows.Close()
}
