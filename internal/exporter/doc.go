// Package exporter provides CSV export functionality for the summary
// statistics pipeline.
//
// CSVWriter serializes a summary table into the output directory as
// summary_statistics.csv, creating the directory if absent and replacing the
// file whole on every run.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(logger)
//	path, err := writer.WriteSummary(summary, "output")
package exporter
