package domain

// ColumnFilter selects one data column of the summary table: the distinct
// token count for (Vendor, Status) within the source identified by SourceID,
// broken down per category label. Several filters may reference the same
// source.
type ColumnFilter struct {
	SourceID string `json:"source_id" yaml:"source_id" validate:"required"`
	Vendor   string `json:"vendor" yaml:"vendor" validate:"required"`
	Status   string `json:"status" yaml:"status" validate:"required"`
	Column   string `json:"column" yaml:"column" validate:"required"`
}

// Key returns the aggregate lookup key for this filter.
func (f ColumnFilter) Key() VendorStatusKey {
	return VendorStatusKey{Vendor: f.Vendor, Status: f.Status}
}

// SummaryTable is the terminal artifact of a run. Labels are the data rows
// in caller order, Headers the filter columns in caller order. Cells is
// indexed [label][filter]. Totals carries the arithmetic column sums; the
// persisted form writes them as SUM formulas over the data rows so that
// manual edits keep totals consistent.
type SummaryTable struct {
	Labels  []string
	Headers []string
	Cells   [][]int
	Totals  []int
}

// Cell returns the count at (label row, filter column).
func (t SummaryTable) Cell(row, col int) int {
	return t.Cells[row][col]
}
