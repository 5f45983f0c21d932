package dataprocessing

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"stocktally/pkg/contracts/domain"
)

// ProgressInterval is the row cadence at which an aggregation progress
// callback fires. The trailing partial batch does not trigger a call.
const ProgressInterval = 1000

// RowReader streams the raw rows of one sheet in file order. Next returns
// io.EOF once the sheet is exhausted. The sequence is single-pass; the
// caller owns opening and closing the underlying workbook.
type RowReader interface {
	Next() ([]string, error)
}

// ProgressFunc receives the cumulative count of data rows consumed so far.
// Advisory only: it must not block, and aggregation correctness does not
// depend on it.
type ProgressFunc func(rowsProcessed int)

// Aggregator folds the rows of one source into a per-source tally of
// distinct part-family tokens keyed by (vendor, status) and category.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator. A nil logger falls back to
// slog.Default.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// AggregateSource consumes rows exactly once, in order, and returns the
// source's aggregate.
//
// Header convention: the reader yields the sheet from row 1 inclusive and
// AggregateSource itself discards the first row it receives. Sources
// without a header row are not supported.
//
// An incomplete column mapping returns an empty aggregate immediately,
// without consuming rows: an unconfigured source contributes nothing but
// must not abort the run. Rows that fail to resolve, match no category, or
// yield no token are skipped. A read fault abandons the whole source and
// returns the cause with no partial aggregate; cancellation does the same
// at the next row boundary.
func (a *Aggregator) AggregateSource(
	ctx context.Context,
	rows RowReader,
	mapping domain.ColumnMapping,
	labels []string,
	progress ProgressFunc,
) (domain.SourceAggregate, error) {
	aggregate := domain.NewSourceAggregate()

	if !mapping.Complete() {
		a.logger.DebugContext(ctx, "source mapping incomplete, skipping aggregation",
			slog.String("vendor_column", mapping.VendorColumn),
			slog.String("status_column", mapping.StatusColumn),
			slog.String("part_column", mapping.PartColumn))
		return aggregate, nil
	}

	vendorIdx, statusIdx, partIdx, err := resolveMapping(mapping)
	if err != nil {
		return nil, err
	}

	processed := 0
	header := true

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if header {
			header = false
			continue
		}

		processed++
		if progress != nil && processed%ProgressInterval == 0 {
			progress(processed)
		}

		resolved, ok := ResolveRow(row, vendorIdx, statusIdx, partIdx)
		if !ok {
			continue
		}
		category, ok := Classify(resolved.PartNumber, labels)
		if !ok {
			continue
		}
		token, ok := ExtractToken(resolved.PartNumber)
		if !ok {
			continue
		}

		key := domain.VendorStatusKey{Vendor: resolved.Vendor, Status: resolved.Status}
		aggregate.Insert(key, category, token)
	}

	a.logger.DebugContext(ctx, "source aggregation complete",
		slog.Int("rows_processed", processed),
		slog.Int("aggregate_cells", aggregate.Rows()))

	return aggregate, nil
}

// resolveMapping converts the mapping's column letters to 0-based offsets.
func resolveMapping(mapping domain.ColumnMapping) (vendorIdx, statusIdx, partIdx int, err error) {
	vendor, err := ColumnNameToIndex(mapping.VendorColumn)
	if err != nil {
		return 0, 0, 0, err
	}
	status, err := ColumnNameToIndex(mapping.StatusColumn)
	if err != nil {
		return 0, 0, 0, err
	}
	part, err := ColumnNameToIndex(mapping.PartColumn)
	if err != nil {
		return 0, 0, 0, err
	}
	return vendor - 1, status - 1, part - 1, nil
}
