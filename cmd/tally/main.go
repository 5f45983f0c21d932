package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"stocktally/internal/config"
	apperrors "stocktally/internal/errors"
	"stocktally/internal/exporter"
	"stocktally/internal/infrastructure"
	"stocktally/internal/runner"
)

func main() {
	root := flag.String("root", ".", "configuration root directory (project file and relative workbook paths resolve against it)")
	projectFile := flag.String("project", "project.yaml", "project file, relative to the root")
	outFile := flag.String("out", "summary.xlsx", "output workbook path")
	parallel := flag.Int("parallel", 1, "number of sources to aggregate concurrently")
	flag.Parse()

	cfg, err := config.Load(*root)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, logFile, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracing, err := infrastructure.InitializeTracing(cfg.Tracing, logger)
	if err != nil {
		logger.Error("Failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer tracing.Shutdown(context.Background())

	logger.Info("Starting stocktally summary run",
		slog.String("root", *root),
		slog.String("project", *projectFile),
		slog.String("out", *outFile),
		slog.Int("parallel", *parallel))

	store := config.NewProjectStore(*root, logger)
	project, err := store.Load(*projectFile)
	if err != nil {
		logger.Error("Failed to load project file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	run := runner.New(logger, tracing.Tracer, runner.NewWorkbookProvider(store), runner.Config{
		Parallelism: *parallel,
	})

	result, err := run.Run(ctx, project)
	if err != nil {
		logger.Error("Run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, name := range result.Unconfigured {
		logger.Warn("Source skipped: no usable column mapping", slog.String("source", name))
	}
	for _, srcErr := range result.SourceErrors {
		logger.Error("Source failed",
			slog.String("source", apperrors.SourceName(srcErr)),
			slog.String("error", srcErr.Error()))
	}

	writer := exporter.NewSummaryWriter(logger, exporter.SummaryWriterConfig{
		SheetName:      cfg.Output.SheetName,
		LabelHeader:    cfg.Output.LabelHeader,
		MinColumnWidth: cfg.Output.MinColumnWidth,
	})
	if err := writer.Write(ctx, *outFile, result.Table); err != nil {
		logger.Error("Failed to write summary workbook", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Summary complete",
		slog.String("out", *outFile),
		slog.Int("sources_aggregated", len(result.RowsProcessed)),
		slog.Int("sources_failed", len(result.SourceErrors)),
		slog.Int("sources_unconfigured", len(result.Unconfigured)))

	if len(result.SourceErrors) > 0 {
		os.Exit(2)
	}
}
