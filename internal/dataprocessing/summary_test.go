package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktally/pkg/contracts/domain"
)

func buildAggregate(t *testing.T, rows [][]string, labels []string) domain.SourceAggregate {
	t.Helper()
	withHeader := append([][]string{{"Vendor", "Status", "Part Number"}}, rows...)
	aggregate, err := NewAggregator(nil).AggregateSource(
		context.Background(),
		&sliceRows{rows: withHeader},
		completeMapping(),
		labels,
		nil,
	)
	require.NoError(t, err)
	return aggregate
}

// End-to-end scenario: one source, one filter on (V1, 1). Rows outside the
// filter's vendor/status pair or outside the label set must not leak into
// the column.
func TestBuildSummarySingleFilter(t *testing.T) {
	labels := []string{"LL", "LM"}
	aggregate := buildAggregate(t, [][]string{
		{"V1", "1", "LL_100"},
		{"V1", "1", "LL_200"},
		{"V1", "0", "LM_300"},
		{"V2", "1", "XX_999"},
	}, labels)

	filters := []domain.ColumnFilter{
		{SourceID: "src-1", Vendor: "V1", Status: "1", Column: "V1 active"},
	}

	table := BuildSummary(labels, filters, map[string]domain.SourceAggregate{"src-1": aggregate})

	require.Equal(t, []string{"LL", "LM"}, table.Labels)
	require.Equal(t, []string{"V1 active"}, table.Headers)
	assert.Equal(t, 2, table.Cell(0, 0))
	assert.Equal(t, 0, table.Cell(1, 0))
	assert.Equal(t, []int{2}, table.Totals)
}

// A filter referencing a source that produced nothing (or no aggregate at
// all) reads as an all-zero column, never an error.
func TestBuildSummaryAbsentSource(t *testing.T) {
	labels := []string{"LL", "LM"}
	filters := []domain.ColumnFilter{
		{SourceID: "unconfigured", Vendor: "V1", Status: "1", Column: "empty source"},
		{SourceID: "missing", Vendor: "V1", Status: "1", Column: "no aggregate"},
	}

	table := BuildSummary(labels, filters, map[string]domain.SourceAggregate{
		"unconfigured": domain.NewSourceAggregate(),
	})

	for r := range labels {
		for c := range filters {
			assert.Zero(t, table.Cell(r, c))
		}
	}
	assert.Equal(t, []int{0, 0}, table.Totals)
}

// Two filters on the same source and same (vendor, status) must produce
// identical columns: building the table reads the aggregate without
// mutating it.
func TestBuildSummaryRepeatedFilter(t *testing.T) {
	labels := []string{"LL"}
	aggregate := buildAggregate(t, [][]string{
		{"V1", "1", "LL_100"},
		{"V1", "1", "LL_200"},
	}, labels)

	filters := []domain.ColumnFilter{
		{SourceID: "src-1", Vendor: "V1", Status: "1", Column: "first"},
		{SourceID: "src-1", Vendor: "V1", Status: "1", Column: "second"},
	}

	table := BuildSummary(labels, filters, map[string]domain.SourceAggregate{"src-1": aggregate})

	assert.Equal(t, table.Cell(0, 0), table.Cell(0, 1))
	assert.Equal(t, []int{2, 2}, table.Totals)
}

func TestBuildSummaryTotalsEqualColumnSums(t *testing.T) {
	labels := []string{"LL", "LM", "LN"}
	aggregate := buildAggregate(t, [][]string{
		{"V1", "1", "LL_100"},
		{"V1", "1", "LM_1"},
		{"V1", "1", "LM_2"},
		{"V1", "1", "LN_1"},
		{"V2", "1", "LN_2"},
	}, labels)

	filters := []domain.ColumnFilter{
		{SourceID: "s", Vendor: "V1", Status: "1", Column: "V1"},
		{SourceID: "s", Vendor: "V2", Status: "1", Column: "V2"},
	}

	table := BuildSummary(labels, filters, map[string]domain.SourceAggregate{"s": aggregate})

	for c := range filters {
		sum := 0
		for r := range labels {
			sum += table.Cell(r, c)
		}
		assert.Equal(t, sum, table.Totals[c], "column %d", c)
	}
}

func TestBuildSummaryDeterministicOrder(t *testing.T) {
	labels := []string{"LM", "LL"} // caller order, not sorted
	aggregate := buildAggregate(t, [][]string{
		{"V1", "1", "LL_100"},
		{"V1", "1", "LM_100"},
	}, labels)

	filters := []domain.ColumnFilter{
		{SourceID: "s", Vendor: "V1", Status: "1", Column: "b"},
		{SourceID: "s", Vendor: "V1", Status: "0", Column: "a"},
	}
	aggregates := map[string]domain.SourceAggregate{"s": aggregate}

	first := BuildSummary(labels, filters, aggregates)
	second := BuildSummary(labels, filters, aggregates)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"LM", "LL"}, first.Labels)
	assert.Equal(t, []string{"b", "a"}, first.Headers)
}

// Mutating the summary's label slice must not reach back into the caller's
// label set.
func TestBuildSummaryCopiesLabels(t *testing.T) {
	labels := []string{"LL"}
	table := BuildSummary(labels, nil, nil)
	table.Labels[0] = "mutated"
	assert.Equal(t, "LL", labels[0])
}
