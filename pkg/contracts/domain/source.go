package domain

import (
	"strings"
)

// ColumnMapping binds the columns of one source sheet to the fields the
// classifier needs. Addresses are spreadsheet column letters ("A", "BC").
// DataColumn is accepted and persisted but not read by aggregation yet.
type ColumnMapping struct {
	VendorColumn string `json:"vendor_column" yaml:"vendor_column"`
	StatusColumn string `json:"status_column" yaml:"status_column"`
	PartColumn   string `json:"part_column" yaml:"part_column"`
	DataColumn   string `json:"data_column,omitempty" yaml:"data_column,omitempty"`
}

// Complete reports whether all columns required for aggregation are set.
// A source with an incomplete mapping contributes an empty aggregate; it is
// not an error.
func (m ColumnMapping) Complete() bool {
	return strings.TrimSpace(m.VendorColumn) != "" &&
		strings.TrimSpace(m.StatusColumn) != "" &&
		strings.TrimSpace(m.PartColumn) != ""
}

// SourceConfig describes one tabular input: the workbook on disk, the sheet
// to read, and the column mapping. ID is assigned at load time when missing
// and is stable across save/load round trips.
type SourceConfig struct {
	ID          string        `json:"id" yaml:"id" validate:"omitempty,uuid"`
	Path        string        `json:"path" yaml:"path" validate:"required"`
	DisplayName string        `json:"display_name" yaml:"display_name"`
	SheetName   string        `json:"sheet_name" yaml:"sheet_name"`
	Mapping     ColumnMapping `json:"mapping" yaml:"mapping"`
}

// Name returns the display name, falling back to the file path.
func (s SourceConfig) Name() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.Path
}
