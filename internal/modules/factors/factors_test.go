package factors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantpool/advisor/internal/market"
)

func obsSeries(n int, close float64) []market.Observation {
	series := make([]market.Observation, n)
	for i := range series {
		series[i] = market.Observation{
			Symbol: "TST",
			Date:   fmt.Sprintf("2024-%02d-%02d", i/28+1, i%28+1),
			Close:  close,
			Volume: 100,
		}
	}
	return series
}

func TestVolumeSurge(t *testing.T) {
	series := obsSeries(10, 100)
	series[9].Volume = 250

	got := volumeSurge(series)
	require.NotNil(t, got)
	assert.InDelta(t, 2.5, *got, 1e-9)
}

func TestVolumeSurge_ZeroBaselineUndefined(t *testing.T) {
	series := obsSeries(10, 100)
	for i := range series {
		series[i].Volume = 0
	}
	series[9].Volume = 500

	assert.Nil(t, volumeSurge(series))
}

func TestTurnoverSurge(t *testing.T) {
	series := obsSeries(10, 100)
	for i := range series {
		v := 10.0
		series[i].Turnover = &v
	}
	spike := 30.0
	series[9].Turnover = &spike

	got := turnoverSurge(series)
	require.NotNil(t, got)
	assert.InDelta(t, 3.0, *got, 1e-9)
}

func TestTurnoverSurge_MissingDayUndefined(t *testing.T) {
	series := obsSeries(10, 100)
	for i := range series {
		v := 10.0
		series[i].Turnover = &v
	}
	series[4].Turnover = nil

	assert.Nil(t, turnoverSurge(series))
}

func TestEarningsYield(t *testing.T) {
	series := obsSeries(1, 100)

	pe := 20.0
	series[0].PERatio = &pe
	got := earningsYield(series)
	require.NotNil(t, got)
	assert.InDelta(t, 0.05, *got, 1e-9)

	series[0].PERatio = nil
	assert.Nil(t, earningsYield(series))

	negative := -5.0
	series[0].PERatio = &negative
	assert.Nil(t, earningsYield(series))
}

func TestRoe(t *testing.T) {
	series := obsSeries(1, 100)
	assert.Nil(t, roe(series))

	v := 0.18
	series[0].ROE = &v
	got := roe(series)
	require.NotNil(t, got)
	assert.Equal(t, 0.18, *got)
}

func TestPricePercentile(t *testing.T) {
	series := obsSeries(252, 100)

	// At the lows: every trailing close sits above the current one.
	series[251].Close = 50
	got := pricePercentile(series)
	require.NotNil(t, got)
	assert.Equal(t, 1.0, *got)

	// At the highs: nothing above.
	series[251].Close = 200
	got = pricePercentile(series)
	require.NotNil(t, got)
	assert.Equal(t, 0.0, *got)
}

func TestPriceMomentum_RisingSeriesPositive(t *testing.T) {
	series := obsSeries(61, 0)
	for i := range series {
		series[i].Close = 100 + float64(i)
	}

	got := priceMomentum(series)
	require.NotNil(t, got)
	assert.Greater(t, *got, 0.0)
}

func TestReturnStability_CalmerSeriesRanksHigher(t *testing.T) {
	calm := obsSeries(61, 0)
	wild := obsSeries(61, 0)
	for i := range calm {
		calm[i].Close = 100 + 0.1*float64(i%2)
		wild[i].Close = 100 + 10*float64(i%2)
	}

	calmVal := returnStability(calm)
	wildVal := returnStability(wild)
	require.NotNil(t, calmVal)
	require.NotNil(t, wildVal)
	assert.Greater(t, *calmVal, *wildVal)
}
