package dataprocessing

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktally/pkg/contracts/domain"
)

// sliceRows is a slice-backed RowReader for tests. It records how many rows
// were consumed and can fail after a given row to simulate a read fault.
type sliceRows struct {
	rows      [][]string
	pos       int
	failAfter int // fail once pos reaches this value; 0 means never
	failErr   error
}

func (s *sliceRows) Next() ([]string, error) {
	if s.failAfter > 0 && s.pos >= s.failAfter {
		return nil, s.failErr
	}
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}

func completeMapping() domain.ColumnMapping {
	return domain.ColumnMapping{VendorColumn: "A", StatusColumn: "B", PartColumn: "C"}
}

func TestAggregateSource(t *testing.T) {
	ctx := context.Background()
	labels := []string{"LL", "LM"}

	rows := &sliceRows{rows: [][]string{
		{"Vendor", "Status", "Part Number"}, // header, discarded by the engine
		{"V1", "1", "LL_100"},
		{"V1", "1", "LL_200"},
		{"V1", "0", "LM_300"},
		{"V2", "1", "XX_999"}, // no category match
		{"V1", "1", ""},       // empty part number
		{"V1"},                // short row
	}}

	aggregate, err := NewAggregator(nil).AggregateSource(ctx, rows, completeMapping(), labels, nil)
	require.NoError(t, err)

	v1Active := domain.VendorStatusKey{Vendor: "V1", Status: "1"}
	v1Inactive := domain.VendorStatusKey{Vendor: "V1", Status: "0"}

	assert.Equal(t, 2, aggregate.DistinctCount(v1Active, "LL"))
	assert.Equal(t, 0, aggregate.DistinctCount(v1Active, "LM"))
	assert.Equal(t, 1, aggregate.DistinctCount(v1Inactive, "LM"))
	assert.Equal(t, 0, aggregate.DistinctCount(domain.VendorStatusKey{Vendor: "V2", Status: "1"}, "LL"))
}

// Feeding the same part family twice for the same (vendor, status, category)
// must count once: the tally is distinct tokens, not occurrences.
func TestAggregateSourceDistinctTokens(t *testing.T) {
	rows := &sliceRows{rows: [][]string{
		{"Vendor", "Status", "Part Number"},
		{"V1", "1", "LL_100"},
		{"V1", "1", "LL_100"},
		{"V1", "1", "ll_100_rev3"}, // same family after trim/split/upcase
	}}

	aggregate, err := NewAggregator(nil).AggregateSource(context.Background(), rows, completeMapping(), []string{"LL"}, nil)
	require.NoError(t, err)

	key := domain.VendorStatusKey{Vendor: "V1", Status: "1"}
	assert.Equal(t, 1, aggregate.DistinctCount(key, "LL"))
}

func TestAggregateSourceUnconfiguredMapping(t *testing.T) {
	tests := []struct {
		name    string
		mapping domain.ColumnMapping
	}{
		{name: "missing vendor column", mapping: domain.ColumnMapping{StatusColumn: "B", PartColumn: "C"}},
		{name: "missing status column", mapping: domain.ColumnMapping{VendorColumn: "A", PartColumn: "C"}},
		{name: "missing part column", mapping: domain.ColumnMapping{VendorColumn: "A", StatusColumn: "B"}},
		{name: "all missing", mapping: domain.ColumnMapping{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := &sliceRows{rows: [][]string{
				{"Vendor", "Status", "Part Number"},
				{"V1", "1", "LL_100"},
			}}

			aggregate, err := NewAggregator(nil).AggregateSource(context.Background(), rows, tt.mapping, []string{"LL"}, nil)
			require.NoError(t, err)
			assert.Empty(t, aggregate)
			assert.Zero(t, rows.pos, "unconfigured source must not consume rows")
		})
	}
}

func TestAggregateSourceInvalidColumnLetter(t *testing.T) {
	mapping := domain.ColumnMapping{VendorColumn: "A1", StatusColumn: "B", PartColumn: "C"}
	rows := &sliceRows{rows: [][]string{{"Vendor", "Status", "Part"}}}

	_, err := NewAggregator(nil).AggregateSource(context.Background(), rows, mapping, []string{"LL"}, nil)
	require.Error(t, err)
	assert.Zero(t, rows.pos)
}

func TestAggregateSourceProgressCadence(t *testing.T) {
	// Header plus 2500 data rows: callbacks fire at exactly 1000 and 2000,
	// never for the trailing partial batch.
	data := [][]string{{"Vendor", "Status", "Part Number"}}
	for i := 0; i < 2500; i++ {
		data = append(data, []string{"V1", "1", "LL_100"})
	}

	var calls []int
	progress := func(rowsProcessed int) {
		calls = append(calls, rowsProcessed)
	}

	_, err := NewAggregator(nil).AggregateSource(context.Background(), &sliceRows{rows: data}, completeMapping(), []string{"LL"}, progress)
	require.NoError(t, err)
	assert.Equal(t, []int{1000, 2000}, calls)
}

func TestAggregateSourceReadFault(t *testing.T) {
	readErr := errors.New("corrupt shared strings table")
	rows := &sliceRows{
		rows: [][]string{
			{"Vendor", "Status", "Part Number"},
			{"V1", "1", "LL_100"},
		},
		failAfter: 2,
		failErr:   readErr,
	}

	aggregate, err := NewAggregator(nil).AggregateSource(context.Background(), rows, completeMapping(), []string{"LL"}, nil)
	require.ErrorIs(t, err, readErr)
	assert.Nil(t, aggregate, "a faulted source must not return a partial aggregate")
}

func TestAggregateSourceCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows := &sliceRows{rows: [][]string{
		{"Vendor", "Status", "Part Number"},
		{"V1", "1", "LL_100"},
	}}

	aggregate, err := NewAggregator(nil).AggregateSource(ctx, rows, completeMapping(), []string{"LL"}, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, aggregate)
}
