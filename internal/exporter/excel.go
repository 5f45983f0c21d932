package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"stocktally/internal/errors"
	"stocktally/pkg/contracts/domain"
)

const totalRowLabel = "TOTAL"

// SummaryWriter persists a summary table as an xlsx workbook.
type SummaryWriter struct {
	logger      *slog.Logger
	sheetName   string
	labelHeader string
	minColWidth float64
}

// SummaryWriterConfig holds configuration options for the SummaryWriter.
type SummaryWriterConfig struct {
	SheetName      string  // Name of the output sheet
	LabelHeader    string  // Header text of the leading label column
	MinColumnWidth float64 // Floor for auto-fitted column widths
}

// DefaultSummaryWriterConfig returns the standard output configuration.
func DefaultSummaryWriterConfig() SummaryWriterConfig {
	return SummaryWriterConfig{
		SheetName:      "Summary",
		LabelHeader:    "Category",
		MinColumnWidth: 10,
	}
}

// NewSummaryWriter creates a summary writer with the given configuration.
func NewSummaryWriter(logger *slog.Logger, config SummaryWriterConfig) *SummaryWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if config.SheetName == "" {
		config.SheetName = "Summary"
	}
	if config.LabelHeader == "" {
		config.LabelHeader = "Category"
	}
	if config.MinColumnWidth <= 0 {
		config.MinColumnWidth = 10
	}
	return &SummaryWriter{
		logger:      logger,
		sheetName:   config.SheetName,
		labelHeader: config.LabelHeader,
		minColWidth: config.MinColumnWidth,
	}
}

// Write renders the table to path. Header cells are bold, every populated
// cell is centered and bordered, column widths auto-fit the rendered text
// with a floor, and an auto-filter spans the populated range. The TOTAL row
// is written as SUM formulas over the data rows, not literals, so manual
// edits to the persisted table keep totals consistent.
func (w *SummaryWriter) Write(ctx context.Context, path string, table domain.SummaryTable) error {
	w.logger.InfoContext(ctx, "writing summary workbook",
		slog.String("path", path),
		slog.Int("label_rows", len(table.Labels)),
		slog.Int("filter_columns", len(table.Headers)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewPersistenceError("failed to create directory for summary workbook", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), w.sheetName); err != nil {
		return errors.NewPersistenceError("failed to name summary sheet", err)
	}

	if err := w.writeCells(f, table); err != nil {
		return err
	}
	if err := w.applyStyles(f, table); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewPersistenceError(fmt.Sprintf("failed to save summary workbook %s", path), err)
	}

	w.logger.InfoContext(ctx, "summary workbook written", slog.String("path", path))
	return nil
}

func (w *SummaryWriter) writeCells(f *excelize.File, table domain.SummaryTable) error {
	set := func(col, row int, value interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return errors.NewPersistenceError("failed to resolve cell coordinates", err)
		}
		if err := f.SetCellValue(w.sheetName, cell, value); err != nil {
			return errors.NewPersistenceError(fmt.Sprintf("failed to write cell %s", cell), err)
		}
		return nil
	}

	// Header row: label column header, then one header per filter.
	if err := set(1, 1, w.labelHeader); err != nil {
		return err
	}
	for c, header := range table.Headers {
		if err := set(c+2, 1, header); err != nil {
			return err
		}
	}

	// One data row per label, counts in filter order.
	for r, label := range table.Labels {
		if err := set(1, r+2, label); err != nil {
			return err
		}
		for c := range table.Headers {
			if err := set(c+2, r+2, table.Cell(r, c)); err != nil {
				return err
			}
		}
	}

	// TOTAL row: formulas over the data range of each column. With no data
	// rows there is nothing to sum and the literal zero stands in.
	totalRow := len(table.Labels) + 2
	if err := set(1, totalRow, totalRowLabel); err != nil {
		return err
	}
	for c := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(c+2, totalRow)
		if err != nil {
			return errors.NewPersistenceError("failed to resolve total cell coordinates", err)
		}
		if len(table.Labels) == 0 {
			if err := f.SetCellValue(w.sheetName, cell, 0); err != nil {
				return errors.NewPersistenceError(fmt.Sprintf("failed to write cell %s", cell), err)
			}
			continue
		}
		first, err := excelize.CoordinatesToCellName(c+2, 2)
		if err != nil {
			return errors.NewPersistenceError("failed to resolve total range start", err)
		}
		last, err := excelize.CoordinatesToCellName(c+2, totalRow-1)
		if err != nil {
			return errors.NewPersistenceError("failed to resolve total range end", err)
		}
		formula := fmt.Sprintf("SUM(%s:%s)", first, last)
		if err := f.SetCellFormula(w.sheetName, cell, formula); err != nil {
			return errors.NewPersistenceError(fmt.Sprintf("failed to write total formula %s", formula), err)
		}
	}

	return nil
}

func (w *SummaryWriter) applyStyles(f *excelize.File, table domain.SummaryTable) error {
	borders := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
	centered := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: centered,
		Border:    borders,
	})
	if err != nil {
		return errors.NewPersistenceError("failed to create header style", err)
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: centered,
		Border:    borders,
	})
	if err != nil {
		return errors.NewPersistenceError("failed to create data style", err)
	}

	lastCol := len(table.Headers) + 1
	totalRow := len(table.Labels) + 2

	topLeft, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return errors.NewPersistenceError("failed to resolve style range", err)
	}
	headerEnd, err := excelize.CoordinatesToCellName(lastCol, 1)
	if err != nil {
		return errors.NewPersistenceError("failed to resolve style range", err)
	}
	bottomRight, err := excelize.CoordinatesToCellName(lastCol, totalRow)
	if err != nil {
		return errors.NewPersistenceError("failed to resolve style range", err)
	}
	dataStart, err := excelize.CoordinatesToCellName(1, 2)
	if err != nil {
		return errors.NewPersistenceError("failed to resolve style range", err)
	}

	if err := f.SetCellStyle(w.sheetName, topLeft, headerEnd, headerStyle); err != nil {
		return errors.NewPersistenceError("failed to style header row", err)
	}
	if err := f.SetCellStyle(w.sheetName, dataStart, bottomRight, dataStyle); err != nil {
		return errors.NewPersistenceError("failed to style data rows", err)
	}

	if err := w.fitColumns(f, table); err != nil {
		return err
	}

	filterRange := fmt.Sprintf("%s:%s", topLeft, bottomRight)
	if err := f.AutoFilter(w.sheetName, filterRange, nil); err != nil {
		return errors.NewPersistenceError("failed to apply auto filter", err)
	}

	return nil
}

// fitColumns widens each column to its longest rendered value, with a floor
// and a little padding so the filter drop-down arrows do not cover text.
func (w *SummaryWriter) fitColumns(f *excelize.File, table domain.SummaryTable) error {
	widths := make([]float64, len(table.Headers)+1)

	note := func(col int, text string) {
		if l := float64(len(text)); l > widths[col] {
			widths[col] = l
		}
	}

	note(0, w.labelHeader)
	note(0, totalRowLabel)
	for _, label := range table.Labels {
		note(0, label)
	}
	for c, header := range table.Headers {
		note(c+1, header)
		for r := range table.Labels {
			note(c+1, fmt.Sprintf("%d", table.Cell(r, c)))
		}
		note(c+1, fmt.Sprintf("%d", table.Totals[c]))
	}

	for i, width := range widths {
		width += 2
		if width < w.minColWidth {
			width = w.minColWidth
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return errors.NewPersistenceError("failed to resolve column name for width", err)
		}
		if err := f.SetColWidth(w.sheetName, name, name, width); err != nil {
			return errors.NewPersistenceError(fmt.Sprintf("failed to set width of column %s", name), err)
		}
	}

	return nil
}
