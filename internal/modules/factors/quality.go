package factors

import (
	"github.com/quantpool/advisor/internal/market"
	"github.com/quantpool/advisor/pkg/formulas"
)

// Quality family: fundamental-stability signals. Higher raw values mean a
// steadier instrument.

// returnStability is the negated annualized volatility over the trailing 60
// trading days, so that calmer series rank higher.
func returnStability(series []market.Observation) *float64 {
	closes := market.Closes(series)

	vol := formulas.CalculateVolatilityWindow(closes, 60)
	if vol == nil {
		return nil
	}

	stability := -*vol
	return &stability
}

// roe passes through the latest return-on-equity fundamental. Undefined
// when the provider has none.
func roe(series []market.Observation) *float64 {
	latest := series[len(series)-1]
	if latest.ROE == nil {
		return nil
	}

	v := *latest.ROE
	return &v
}
