package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"taxonstats/internal/aggregator"
	"taxonstats/internal/errors"
)

// SummaryFileName is the summary statistics artifact written into the
// output directory.
const SummaryFileName = "summary_statistics.csv"

var summaryHeader = []string{"phylum", "total_count", "avg_count_per_species"}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteSummary serializes the summary table into outputDir, creating the
// directory (and any missing parents) first. The file is replaced whole on
// every run; overwriting an existing file is silent. Returns the written
// path.
func (w *CSVWriter) WriteSummary(summary *aggregator.SummaryTable, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", errors.NewWriteError("failed to create output directory", err).
			WithContext("path", outputDir)
	}

	fullPath := filepath.Join(outputDir, SummaryFileName)

	w.logger.Info("writing summary statistics",
		slog.String("path", fullPath),
		slog.Int("row_count", len(summary.Rows)))

	records := make([][]string, 0, len(summary.Rows))
	for _, row := range summary.Rows {
		records = append(records, []string{
			row.Phylum,
			formatCount(row.TotalCount),
			formatCount(row.AvgCountPerSpecies),
		})
	}

	if err := writeCSV(fullPath, summaryHeader, records); err != nil {
		return "", errors.NewWriteError("failed to write summary statistics", err).
			WithContext("path", fullPath)
	}

	return fullPath, nil
}

// writeCSV writes a header row followed by the records, truncating any
// existing file at path.
func writeCSV(path string, headers []string, records [][]string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatCount renders a count with the shortest decimal representation, so
// integral totals serialize without a fractional tail.
func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
