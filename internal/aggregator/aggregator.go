package aggregator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"taxonstats/internal/errors"
	"taxonstats/internal/loader"
)

// Column names the aggregation reads from the observation table.
const (
	PhylumColumn = "phylum"
	CountColumn  = "count"
)

// SummaryRow is the grouped aggregate for one phylum.
type SummaryRow struct {
	Phylum             string
	TotalCount         float64
	AvgCountPerSpecies float64
}

// SummaryTable holds one row per distinct phylum, sorted by phylum so the
// written file and the chart share the same order within a run.
type SummaryTable struct {
	Rows []SummaryRow
}

// Aggregate partitions the observation table by exact phylum equality and
// computes the total and mean count per group. Every phylum present in the
// input appears exactly once in the result.
func Aggregate(table *loader.ObservationTable) (*SummaryTable, error) {
	phylumIdx := table.ColumnIndex(PhylumColumn)
	if phylumIdx < 0 {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("required column %q is absent", PhylumColumn), nil)
	}
	countIdx := table.ColumnIndex(CountColumn)
	if countIdx < 0 {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("required column %q is absent", CountColumn), nil)
	}

	if table.Len() == 0 {
		return nil, errors.NewEmptyInputError("input table has no data rows")
	}

	type groupStats struct {
		total float64
		rows  int
	}
	groups := make(map[string]*groupStats)

	for i, row := range table.Rows {
		count, err := strconv.ParseFloat(strings.TrimSpace(row[countIdx]), 64)
		if err != nil {
			return nil, errors.NewSchemaError(
				fmt.Sprintf("column %q contains a non-numeric value at row %d", CountColumn, i+2), err)
		}
		if count < 0 {
			return nil, errors.NewSchemaError(
				fmt.Sprintf("column %q contains a negative value at row %d", CountColumn, i+2), nil)
		}

		phylum := row[phylumIdx]
		group, ok := groups[phylum]
		if !ok {
			group = &groupStats{}
			groups[phylum] = group
		}
		group.total += count
		group.rows++
	}

	phylums := make([]string, 0, len(groups))
	for phylum := range groups {
		phylums = append(phylums, phylum)
	}
	sort.Strings(phylums)

	rows := make([]SummaryRow, 0, len(phylums))
	for _, phylum := range phylums {
		group := groups[phylum]
		rows = append(rows, SummaryRow{
			Phylum:             phylum,
			TotalCount:         group.total,
			AvgCountPerSpecies: group.total / float64(group.rows),
		})
	}

	return &SummaryTable{Rows: rows}, nil
}
