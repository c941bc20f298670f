package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentileRanks_MonotoneOrdering(t *testing.T) {
	raw := map[string]float64{
		"AAA": 1.5,
		"BBB": -0.2,
		"CCC": 0.7,
		"DDD": 3.1,
	}

	ranks := PercentileRanks(raw)

	assert.Len(t, ranks, 4)
	assert.Equal(t, 0.0, ranks["BBB"])
	assert.Equal(t, 100.0, ranks["DDD"])
	assert.Greater(t, ranks["AAA"], ranks["CCC"])
	assert.Greater(t, ranks["CCC"], ranks["BBB"])
}

func TestPercentileRanks_TiesShareAverageRank(t *testing.T) {
	raw := map[string]float64{
		"AAA": 1.0,
		"BBB": 2.0,
		"CCC": 2.0,
		"DDD": 3.0,
	}

	ranks := PercentileRanks(raw)

	// BBB and CCC occupy ranks 2 and 3, averaged to 2.5.
	assert.Equal(t, 0.0, ranks["AAA"])
	assert.Equal(t, 50.0, ranks["BBB"])
	assert.Equal(t, 50.0, ranks["CCC"])
	assert.Equal(t, 100.0, ranks["DDD"])
}

func TestPercentileRanks_AllEqual(t *testing.T) {
	raw := map[string]float64{
		"AAA": 5.0,
		"BBB": 5.0,
		"CCC": 5.0,
	}

	ranks := PercentileRanks(raw)

	for symbol, rank := range ranks {
		assert.Equal(t, 50.0, rank, "symbol %s", symbol)
	}
}

func TestPercentileRanks_SingleMember(t *testing.T) {
	ranks := PercentileRanks(map[string]float64{"AAA": 42.0})

	assert.Equal(t, map[string]float64{"AAA": 50.0}, ranks)
}

func TestPercentileRanks_Empty(t *testing.T) {
	ranks := PercentileRanks(map[string]float64{})

	assert.Empty(t, ranks)
}

func TestPercentileRanks_AbsentStaysAbsent(t *testing.T) {
	// Undefined instruments never enter the input map, so they must not
	// appear in the output either.
	raw := map[string]float64{"AAA": 1.0, "BBB": 2.0}

	ranks := PercentileRanks(raw)

	_, ok := ranks["CCC"]
	assert.False(t, ok)
	assert.Len(t, ranks, 2)
}

func TestPercentileRanks_RangeBounds(t *testing.T) {
	raw := map[string]float64{
		"AAA": -100, "BBB": -1, "CCC": 0, "DDD": 1, "EEE": 100,
	}

	ranks := PercentileRanks(raw)

	for symbol, rank := range ranks {
		assert.GreaterOrEqual(t, rank, 0.0, "symbol %s", symbol)
		assert.LessOrEqual(t, rank, 100.0, "symbol %s", symbol)
	}
}
