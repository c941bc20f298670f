package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeries() []Observation {
	return []Observation{
		{Symbol: "AAA", Date: "2024-03-01", Close: 10, Volume: 100},
		{Symbol: "AAA", Date: "2024-03-04", Close: 11, Volume: 200},
		{Symbol: "AAA", Date: "2024-03-05", Close: 12, Volume: 300},
	}
}

func TestTruncateAfter(t *testing.T) {
	series := testSeries()

	assert.Len(t, TruncateAfter(series, "2024-03-05"), 3)
	assert.Len(t, TruncateAfter(series, "2024-03-04"), 2)
	// A cutoff between trading days keeps everything before it.
	assert.Len(t, TruncateAfter(series, "2024-03-02"), 1)
	assert.Empty(t, TruncateAfter(series, "2024-02-29"))
}

func TestClosesAndVolumes(t *testing.T) {
	series := testSeries()

	assert.Equal(t, []float64{10, 11, 12}, Closes(series))
	assert.Equal(t, []float64{100, 200, 300}, Volumes(series))
}

func TestMemorySource_SortsDefensively(t *testing.T) {
	source := NewMemorySource(map[string][]Observation{
		"AAA": {
			{Symbol: "AAA", Date: "2024-03-05", Close: 12},
			{Symbol: "AAA", Date: "2024-03-01", Close: 10},
		},
	})

	series, err := source.Series("AAA", "")
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, "2024-03-01", series[0].Date)
	assert.Equal(t, "2024-03-05", series[1].Date)
}

func TestMemorySource_SymbolsSorted(t *testing.T) {
	source := NewMemorySource(map[string][]Observation{
		"BBB": nil,
		"AAA": nil,
	})

	symbols, err := source.Symbols()
	require.NoError(t, err)
	assert.Equal(t, []string{"AAA", "BBB"}, symbols)
}

func TestMemorySource_SeriesRespectsCutoff(t *testing.T) {
	source := NewMemorySource(map[string][]Observation{"AAA": testSeries()})

	series, err := source.Series("AAA", "2024-03-04")
	require.NoError(t, err)
	assert.Len(t, series, 2)
}
