package factors

import (
	"github.com/quantpool/advisor/internal/market"
	"github.com/quantpool/advisor/pkg/formulas"
)

// Momentum family: trend and indicator-derived signals.

// priceMomentum blends short, medium and long horizon returns into one raw
// momentum value. Weights follow the 5/20/60-day blend used for stock
// selection: recent horizons dominate.
func priceMomentum(series []market.Observation) *float64 {
	closes := market.Closes(series)

	mom5 := formulas.CalculateMomentum(closes, 5)
	mom20 := formulas.CalculateMomentum(closes, 20)
	mom60 := formulas.CalculateMomentum(closes, 60)
	if mom5 == nil || mom20 == nil || mom60 == nil {
		return nil
	}

	blended := *mom5*0.4 + *mom20*0.4 + *mom60*0.2
	return &blended
}

// rsi14 is the 14-period RSI of the close series.
func rsi14(series []market.Observation) *float64 {
	return formulas.CalculateRSI(market.Closes(series), 14)
}

// maTrend measures moving-average alignment as the spread of the 5-day SMA
// over the 60-day SMA. Positive values mean the short average rides above
// the long one.
func maTrend(series []market.Observation) *float64 {
	closes := market.Closes(series)

	shortMA := formulas.CalculateSMA(closes, 5)
	longMA := formulas.CalculateSMA(closes, 60)
	if shortMA == nil || longMA == nil || *longMA == 0 {
		return nil
	}

	spread := *shortMA / *longMA - 1
	return &spread
}
