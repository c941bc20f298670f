package formulas

import (
	"math"
)

// CalculateSharpeRatio calculates the annualized Sharpe ratio from a series
// of periodic returns.
//
// Sharpe = (mean return - periodic risk-free rate) / stddev of returns,
// annualized by sqrt(periodsPerYear).
//
// Returns nil if there are fewer than two returns or the series has zero
// variance.
func CalculateSharpeRatio(returns []float64, riskFreeRate float64, periodsPerYear int) *float64 {
	if len(returns) < 2 {
		return nil
	}

	meanReturn := Mean(returns)

	stdDev := StdDev(returns)
	if stdDev == 0 {
		return nil
	}

	periodicRiskFree := riskFreeRate / float64(periodsPerYear)

	sharpe := (meanReturn - periodicRiskFree) / stdDev
	annualized := sharpe * math.Sqrt(float64(periodsPerYear))

	return &annualized
}

// CalculateSharpeFromPrices calculates the Sharpe ratio directly from a daily
// price series, assuming 252 trading days per year.
func CalculateSharpeFromPrices(prices []float64, riskFreeRate float64) *float64 {
	if len(prices) < 2 {
		return nil
	}

	returns := CalculateReturns(prices)
	return CalculateSharpeRatio(returns, riskFreeRate, 252)
}
