package formulas

// CalculateMaxDrawdown calculates the maximum peak-to-trough decline of a
// value series.
//
// Drawdown = (peak - value) / peak; the maximum over the series is returned
// as a positive fraction (0.25 = 25% loss from peak), or nil when fewer than
// two points exist.
func CalculateMaxDrawdown(values []float64) *float64 {
	if len(values) < 2 {
		return nil
	}

	maxDrawdown := 0.0
	peak := values[0]

	for _, v := range values {
		if v > peak {
			peak = v
		}

		if peak > 0 {
			drawdown := (peak - v) / peak
			if drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	return &maxDrawdown
}

// CalculateMomentum calculates the fractional price change over the trailing
// period of `days` observations. Returns nil with insufficient history.
func CalculateMomentum(prices []float64, days int) *float64 {
	if len(prices) < days+1 {
		return nil
	}

	startPrice := prices[len(prices)-days-1]
	endPrice := prices[len(prices)-1]

	if startPrice == 0 {
		return nil
	}

	momentum := (endPrice - startPrice) / startPrice
	return &momentum
}

// CalculateVolatilityWindow calculates annualized volatility over the
// trailing window of `days` observations. Returns nil with insufficient
// history.
func CalculateVolatilityWindow(prices []float64, days int) *float64 {
	if len(prices) < days+1 {
		return nil
	}

	window := prices[len(prices)-days-1:]
	returns := CalculateReturns(window)
	if len(returns) < 2 {
		return nil
	}

	vol := AnnualizedVolatility(returns)
	return &vol
}
