package factors

import (
	"github.com/quantpool/advisor/internal/market"
)

// Value family: valuation-derived signals. Higher raw values mean cheaper.

// pricePercentile is the share of the trailing year's closes sitting above
// the current close. A price near its historical lows scores close to 1, a
// price at its highs close to 0.
func pricePercentile(series []market.Observation) *float64 {
	closes := market.Closes(series)
	window := closes[len(closes)-252:]
	current := window[len(window)-1]

	above := 0
	for _, c := range window[:len(window)-1] {
		if c > current {
			above++
		}
	}

	share := float64(above) / float64(len(window)-1)
	return &share
}

// earningsYield is the inverse PE ratio. Undefined when the fundamental is
// missing or the instrument has no earnings.
func earningsYield(series []market.Observation) *float64 {
	latest := series[len(series)-1]
	if latest.PERatio == nil || *latest.PERatio <= 0 {
		return nil
	}

	yield := 1 / *latest.PERatio
	return &yield
}
