package dataprocessing

import (
	"stocktally/pkg/contracts/domain"
)

// BuildSummary assembles the cross-tab table from the per-source aggregates.
// Rows follow the label order, columns follow the filter order, so identical
// inputs produce identical tables. Lookups never create aggregate entries: a
// filter pointing at a source, key, or category that never occurred reads as
// zero rather than erroring.
//
// Totals holds the arithmetic column sums; the exporter persists them as SUM
// formulas over the data rows so the written workbook stays consistent under
// manual edits.
func BuildSummary(
	labels []string,
	filters []domain.ColumnFilter,
	aggregates map[string]domain.SourceAggregate,
) domain.SummaryTable {
	table := domain.SummaryTable{
		Labels:  append([]string(nil), labels...),
		Headers: make([]string, len(filters)),
		Cells:   make([][]int, len(labels)),
		Totals:  make([]int, len(filters)),
	}

	for c, filter := range filters {
		table.Headers[c] = filter.Column
	}

	for r, label := range labels {
		table.Cells[r] = make([]int, len(filters))
		for c, filter := range filters {
			aggregate, ok := aggregates[filter.SourceID]
			if !ok {
				continue
			}
			count := aggregate.DistinctCount(filter.Key(), label)
			table.Cells[r][c] = count
			table.Totals[c] += count
		}
	}

	return table
}
