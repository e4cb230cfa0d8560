package aggregator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxonstats/internal/errors"
	"taxonstats/internal/loader"
)

func observationTable(columns []string, rows ...[]string) *loader.ObservationTable {
	return &loader.ObservationTable{Columns: columns, Rows: rows}
}

func TestAggregate_FixedInput(t *testing.T) {
	table := observationTable(
		[]string{"phylum", "count"},
		[]string{"Chordata", "5"},
		[]string{"Chordata", "15"},
		[]string{"Arthropoda", "100"},
	)

	summary, err := Aggregate(table)
	require.NoError(t, err)
	require.Len(t, summary.Rows, 2)

	// Rows come back sorted by phylum
	assert.Equal(t, "Arthropoda", summary.Rows[0].Phylum)
	assert.Equal(t, 100.0, summary.Rows[0].TotalCount)
	assert.Equal(t, 100.0, summary.Rows[0].AvgCountPerSpecies)

	assert.Equal(t, "Chordata", summary.Rows[1].Phylum)
	assert.Equal(t, 20.0, summary.Rows[1].TotalCount)
	assert.Equal(t, 10.0, summary.Rows[1].AvgCountPerSpecies)
}

func TestAggregate_Completeness(t *testing.T) {
	table := observationTable(
		[]string{"phylum", "count"},
		[]string{"Mollusca", "3"},
		[]string{"Annelida", "7"},
		[]string{"Mollusca", "4"},
		[]string{"Cnidaria", "1"},
	)

	summary, err := Aggregate(table)
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, row := range summary.Rows {
		seen[row.Phylum]++
	}
	assert.Equal(t, map[string]int{"Annelida": 1, "Cnidaria": 1, "Mollusca": 1}, seen)
}

func TestAggregate_SingleRowGroup(t *testing.T) {
	table := observationTable(
		[]string{"phylum", "count"},
		[]string{"Echinodermata", "42"},
	)

	summary, err := Aggregate(table)
	require.NoError(t, err)
	require.Len(t, summary.Rows, 1)

	row := summary.Rows[0]
	assert.Equal(t, 42.0, row.TotalCount)
	assert.Equal(t, row.TotalCount, row.AvgCountPerSpecies)
}

func TestAggregate_MeanWithinTolerance(t *testing.T) {
	table := observationTable(
		[]string{"phylum", "count"},
		[]string{"Chordata", "1"},
		[]string{"Chordata", "2"},
		[]string{"Chordata", "2"},
	)

	summary, err := Aggregate(table)
	require.NoError(t, err)

	assert.InEpsilon(t, 5.0/3.0, summary.Rows[0].AvgCountPerSpecies, 1e-9)
}

func TestAggregate_FractionalCounts(t *testing.T) {
	table := observationTable(
		[]string{"phylum", "count"},
		[]string{"Porifera", "0.5"},
		[]string{"Porifera", "1.5"},
	)

	summary, err := Aggregate(table)
	require.NoError(t, err)

	assert.Equal(t, 2.0, summary.Rows[0].TotalCount)
	assert.Equal(t, 1.0, summary.Rows[0].AvgCountPerSpecies)
}

func TestAggregate_CaseSensitiveGrouping(t *testing.T) {
	table := observationTable(
		[]string{"phylum", "count"},
		[]string{"chordata", "1"},
		[]string{"Chordata", "2"},
	)

	summary, err := Aggregate(table)
	require.NoError(t, err)
	assert.Len(t, summary.Rows, 2)
}

func TestAggregate_MissingColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
	}{
		{"no phylum", []string{"kingdom", "count"}},
		{"no count", []string{"phylum", "total"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := observationTable(tt.columns, []string{"a", "1"})

			_, err := Aggregate(table)
			require.Error(t, err)
			assert.True(t, errors.IsSchemaError(err))
			assert.False(t, errors.IsDataLoadError(err))
		})
	}
}

func TestAggregate_EmptyTable(t *testing.T) {
	table := observationTable([]string{"phylum", "count"})

	_, err := Aggregate(table)
	require.Error(t, err)
	assert.True(t, errors.IsEmptyInputError(err))
}

func TestAggregate_BadCounts(t *testing.T) {
	tests := []struct {
		name  string
		count string
	}{
		{"non-numeric", "many"},
		{"negative", "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := observationTable(
				[]string{"phylum", "count"},
				[]string{"Chordata", tt.count},
			)

			_, err := Aggregate(table)
			require.Error(t, err)
			assert.True(t, errors.IsSchemaError(err))
		})
	}
}

func TestAggregate_LargeGroupSums(t *testing.T) {
	rows := make([][]string, 0, 1000)
	for i := 0; i < 1000; i++ {
		rows = append(rows, []string{"Arthropoda", fmt.Sprintf("%d", i+1)})
	}
	table := observationTable([]string{"phylum", "count"}, rows...)

	summary, err := Aggregate(table)
	require.NoError(t, err)

	assert.Equal(t, 500500.0, summary.Rows[0].TotalCount)
	assert.InEpsilon(t, 500.5, summary.Rows[0].AvgCountPerSpecies, 1e-9)
}
