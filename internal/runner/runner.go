// Package runner orchestrates a full aggregation run: it fans the
// configured sources out to the aggregation engine, collects per-source
// results and faults, and assembles the final summary table.
package runner

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"stocktally/internal/config"
	"stocktally/internal/dataprocessing"
	apperrors "stocktally/internal/errors"
	"stocktally/pkg/contracts/domain"
)

// RowStream is a closable row reader over one source's sheet.
type RowStream interface {
	dataprocessing.RowReader
	Close() error
}

// RowProvider opens the row stream for a source. Implemented over xlsx
// workbooks in production; tests substitute in-memory streams.
type RowProvider interface {
	OpenRows(ctx context.Context, source domain.SourceConfig) (RowStream, error)
}

// Config holds runner options.
type Config struct {
	// Parallelism bounds how many sources aggregate concurrently.
	// Each source owns its aggregate, so any degree is safe; zero or
	// less means one source at a time, matching the reference behavior.
	Parallelism int
}

// Result is the outcome of one run. Faulted sources appear in SourceErrors
// and contribute nothing to the table; unconfigured sources are listed
// separately because skipping them is intentional, not a failure.
type Result struct {
	Table         domain.SummaryTable
	RowsProcessed map[string]int // source ID -> data rows consumed
	SourceErrors  []error
	Unconfigured  []string // display names of sources without a usable mapping
}

// Runner executes aggregation runs.
type Runner struct {
	logger      *slog.Logger
	tracer      trace.Tracer
	aggregator  *dataprocessing.Aggregator
	provider    RowProvider
	parallelism int
}

// New creates a runner. A nil tracer disables span recording.
func New(logger *slog.Logger, tracer trace.Tracer, provider RowProvider, cfg Config) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("stocktally")
	}
	parallelism := cfg.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}
	return &Runner{
		logger:      logger,
		tracer:      tracer,
		aggregator:  dataprocessing.NewAggregator(logger),
		provider:    provider,
		parallelism: parallelism,
	}
}

// Run aggregates every source of the project and builds the summary table.
//
// The run fails outright only on empty preconditions or cancellation. A
// faulted source is recorded in the result with its name and the other
// sources continue; its filters read as zero columns. Partial aggregates of
// cancelled or faulted sources are discarded, never merged.
func (r *Runner) Run(ctx context.Context, project *config.Project) (*Result, error) {
	if len(project.Sources) == 0 {
		return nil, apperrors.NewConfigError("project has no sources", nil)
	}
	if len(project.Filters) == 0 {
		return nil, apperrors.NewConfigError("project has no filters", nil)
	}

	ctx, span := r.tracer.Start(ctx, "run",
		trace.WithAttributes(
			attribute.Int("sources", len(project.Sources)),
			attribute.Int("filters", len(project.Filters)),
			attribute.Int("labels", len(project.Labels)),
		))
	defer span.End()

	result := &Result{RowsProcessed: make(map[string]int)}
	aggregates := make(map[string]domain.SourceAggregate)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)

	for _, source := range project.Sources {
		g.Go(func() error {
			aggregate, rows, err := r.runSource(gctx, source, project.Labels)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.SourceErrors = append(result.SourceErrors, err)
			case aggregate == nil:
				result.Unconfigured = append(result.Unconfigured, source.Name())
			default:
				aggregates[source.ID] = aggregate
				result.RowsProcessed[source.ID] = rows
			}
			return nil
		})
	}

	// Source faults are collected, not propagated, so Wait only fails on
	// cancellation.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Strings(result.Unconfigured)
	sort.Slice(result.SourceErrors, func(i, j int) bool {
		return apperrors.SourceName(result.SourceErrors[i]) < apperrors.SourceName(result.SourceErrors[j])
	})

	result.Table = dataprocessing.BuildSummary(project.Labels, project.Filters, aggregates)

	r.logger.InfoContext(ctx, "run complete",
		slog.Int("aggregated_sources", len(aggregates)),
		slog.Int("faulted_sources", len(result.SourceErrors)),
		slog.Int("unconfigured_sources", len(result.Unconfigured)))

	return result, nil
}

// runSource aggregates one source. A nil aggregate with nil error means the
// source is unconfigured and contributes nothing.
func (r *Runner) runSource(ctx context.Context, source domain.SourceConfig, labels []string) (domain.SourceAggregate, int, error) {
	ctx, span := r.tracer.Start(ctx, "aggregate_source",
		trace.WithAttributes(attribute.String("source", source.Name())))
	defer span.End()

	if !source.Mapping.Complete() {
		r.logger.InfoContext(ctx, "source has no usable column mapping, skipping",
			slog.String("source", source.Name()))
		return nil, 0, nil
	}

	stream, err := r.provider.OpenRows(ctx, source)
	if err != nil {
		wrapped := apperrors.NewSourceError(source.Name(), err)
		span.RecordError(wrapped)
		return nil, 0, wrapped
	}
	defer stream.Close()

	counting := &countingStream{inner: stream}
	aggregate, err := r.aggregator.AggregateSource(ctx, counting, source.Mapping, labels, r.progressSink(ctx, source))
	if err != nil {
		wrapped := apperrors.NewSourceError(source.Name(), err)
		span.RecordError(wrapped)
		return nil, 0, wrapped
	}

	rows := counting.rows - 1 // discount the header row
	if rows < 0 {
		rows = 0
	}
	span.SetAttributes(attribute.Int("rows_processed", rows))

	return aggregate, rows, nil
}

// progressSink logs aggregation progress. The aggregation engine invokes it
// synchronously every thousand rows; rate.Sometimes caps the log volume so
// reporting never gates throughput on a slow log sink.
func (r *Runner) progressSink(ctx context.Context, source domain.SourceConfig) dataprocessing.ProgressFunc {
	throttle := &rate.Sometimes{First: 1, Interval: time.Second}
	return func(rowsProcessed int) {
		throttle.Do(func() {
			r.logger.InfoContext(ctx, "aggregation progress",
				slog.String("source", source.Name()),
				slog.Int("rows_processed", rowsProcessed))
		})
	}
}

// countingStream counts the rows handed to the aggregation engine,
// including the header it discards.
type countingStream struct {
	inner RowStream
	rows  int
}

func (c *countingStream) Next() ([]string, error) {
	row, err := c.inner.Next()
	if err == nil {
		c.rows++
	}
	return row, err
}
