package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"taxonstats/internal/errors"
)

// ObservationTable holds the raw per-row input dataset. It is loaded once
// and not mutated afterwards.
type ObservationTable struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of data rows in the table.
func (t *ObservationTable) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1 if the table
// has no such column.
func (t *ObservationTable) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// missingSentinels are field values treated as null, matching the sentinels
// the original dataset producers use for absent cells.
var missingSentinels = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"NULL": true,
	"null": true,
	"None": true,
}

// Load reads a delimited observation table from path. The first record is
// the header row; every following record is a data row. Any missing value in
// any field fails the whole load, so downstream stages never see a partial
// table.
func Load(path string) (*ObservationTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewDataLoadError("failed to read input file", err).
			WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewDataLoadError("malformed input file", err).
			WithContext("path", path)
	}

	if len(records) == 0 {
		return nil, errors.NewDataLoadError("input file has no header row", nil).
			WithContext("path", path)
	}

	columns := make([]string, len(records[0]))
	for i, col := range records[0] {
		columns[i] = strings.TrimSpace(col)
	}

	rows := records[1:]
	for i, row := range rows {
		for j, field := range row {
			if isMissing(field) {
				// Row numbers are 1-based and include the header row, so the
				// message points at the line a reader sees in the file.
				return nil, errors.NewDataLoadError(
					fmt.Sprintf("input file contains a missing value at row %d, column %q", i+2, columnName(columns, j)), nil).
					WithContext("path", path)
			}
		}
	}

	return &ObservationTable{Columns: columns, Rows: rows}, nil
}

func isMissing(field string) bool {
	return missingSentinels[strings.TrimSpace(field)]
}

func columnName(columns []string, idx int) string {
	if idx < len(columns) {
		return columns[idx]
	}
	return fmt.Sprintf("#%d", idx+1)
}
