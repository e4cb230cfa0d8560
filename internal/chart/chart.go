package chart

import (
	"log/slog"
	"os"
	"path/filepath"

	gochart "github.com/wcharczuk/go-chart/v2"

	"taxonstats/internal/aggregator"
	"taxonstats/internal/errors"
)

// ChartFileName is the bar chart artifact written into the output directory.
const ChartFileName = "total_species_count_chart.png"

const (
	chartWidth  = 1000
	chartHeight = 600
)

// Renderer draws summary bar charts.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer creates a new chart renderer instance
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger}
}

// RenderTotals draws one bar per summary row with bar height equal to the
// group's total count, and saves the image into outputDir (created if
// absent). Bars keep the summary table's row order. Returns the written
// path.
func (r *Renderer) RenderTotals(summary *aggregator.SummaryTable, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", errors.NewRenderError("failed to create output directory", err).
			WithContext("path", outputDir)
	}

	fullPath := filepath.Join(outputDir, ChartFileName)

	r.logger.Info("rendering bar chart",
		slog.String("path", fullPath),
		slog.Int("bar_count", len(summary.Rows)))

	bars := make([]gochart.Value, 0, len(summary.Rows))
	var maxTotal float64
	for _, row := range summary.Rows {
		if row.TotalCount > maxTotal {
			maxTotal = row.TotalCount
		}
		bars = append(bars, gochart.Value{
			Label: row.Phylum,
			Value: row.TotalCount,
		})
	}

	graph := gochart.BarChart{
		Title:  "Total Species Count per Phylum",
		Width:  chartWidth,
		Height: chartHeight,
		Background: gochart.Style{
			// Headroom for the title and footroom for rotated tick labels
			// plus the axis name, so nothing clips.
			Padding: gochart.Box{Top: 40, Bottom: 60},
		},
		BarWidth: 60,
		// Bars are zero-based: without an anchored base value the y-range
		// collapses when every total is equal (any single-group summary)
		// and rendering fails on valid input.
		UseBaseValue: true,
		BaseValue:    0,
		XAxis: gochart.Style{
			TextRotationDegrees: 45.0,
		},
		YAxis: gochart.YAxis{
			Name: "Total Species Count",
		},
		Bars: bars,
		Elements: []gochart.Renderable{
			xAxisName("Phylum"),
		},
	}

	// Counts of zero are valid input, and a summary whose totals are all
	// zero still has a zero-width value range even with an anchored base.
	// Pin the axis so the chart draws its empty bars instead of failing.
	if maxTotal == 0 {
		graph.YAxis.Range = &gochart.ContinuousRange{Min: 0, Max: 1}
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", errors.NewRenderError("failed to create chart file", err).
			WithContext("path", fullPath)
	}
	defer file.Close()

	if err := graph.Render(gochart.PNG, file); err != nil {
		return "", errors.NewRenderError("failed to render bar chart", err).
			WithContext("path", fullPath)
	}

	return fullPath, nil
}

// xAxisName draws a centered axis title under the plot area. BarChart has no
// x-axis name field of its own, so the label goes in as an extra renderable.
func xAxisName(name string) gochart.Renderable {
	return func(rnd gochart.Renderer, canvasBox gochart.Box, defaults gochart.Style) {
		style := gochart.Style{
			FontSize:            12,
			FontColor:           gochart.DefaultTextColor,
			TextHorizontalAlign: gochart.TextHorizontalAlignCenter,
			TextVerticalAlign:   gochart.TextVerticalAlignBottom,
		}
		if font, err := gochart.GetDefaultFont(); err == nil {
			style.Font = font
		}

		labelBox := gochart.Box{
			Left:   canvasBox.Left,
			Right:  canvasBox.Right,
			Top:    canvasBox.Bottom + 40,
			Bottom: canvasBox.Bottom + 55,
		}
		gochart.Draw.TextWithin(rnd, name, labelBox, style)
	}
}
