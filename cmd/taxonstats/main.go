package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"taxonstats/internal/aggregator"
	"taxonstats/internal/chart"
	"taxonstats/internal/config"
	"taxonstats/internal/exporter"
	"taxonstats/internal/infrastructure"
	"taxonstats/internal/loader"
)

func main() {
	input := flag.String("input", "", "path to the observation CSV (overrides config)")
	output := flag.String("output", "", "output directory for artifacts (overrides config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *input != "" {
		cfg.Input.File = *input
	}
	if *output != "" {
		cfg.Output.Dir = *output
	}

	logger, logFile, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	logger = logger.With(slog.String("run_id", uuid.New().String()))

	exitCode := 0
	if err := run(cfg, logger); err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		exitCode = 1
	}

	// os.Exit skips deferred calls, so the log file closes explicitly here.
	if logFile != nil {
		logFile.Close()
	}
	os.Exit(exitCode)
}

// run executes the four stages in order: load, aggregate, write, render.
// Each stage blocks until complete; the first failure aborts the run with
// the stage named in the returned error.
func run(cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.EnsureDirectories(logger); err != nil {
		return fmt.Errorf("setup stage: %w", err)
	}

	logger.Info("loading data", slog.String("input_file", cfg.Input.File))
	table, err := loader.Load(cfg.Input.File)
	if err != nil {
		return fmt.Errorf("load stage: %w", err)
	}

	logger.Info("analyzing data", slog.Int("row_count", table.Len()))
	summary, err := aggregator.Aggregate(table)
	if err != nil {
		return fmt.Errorf("aggregate stage: %w", err)
	}

	logger.Info("saving results", slog.Int("group_count", len(summary.Rows)))
	writer := exporter.NewCSVWriter(logger)
	summaryPath, err := writer.WriteSummary(summary, cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("write stage: %w", err)
	}
	logger.Info("summary statistics saved", slog.String("path", summaryPath))

	logger.Info("generating visualizations")
	renderer := chart.NewRenderer(logger)
	chartPath, err := renderer.RenderTotals(summary, cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("render stage: %w", err)
	}
	logger.Info("bar chart saved", slog.String("path", chartPath))

	return nil
}
