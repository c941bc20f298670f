package backtest

import (
	"fmt"
	"math"

	"github.com/quantpool/advisor/internal/market"
	"github.com/quantpool/advisor/pkg/formulas"
)

// Simulate replays one instrument's historical price series day by day under
// the parameterized rule set and returns the trade ledger and its metrics.
//
// The position state machine is FLAT -> LONG -> FLAT with at most one open
// position. Decisions at a date use only data through that date; identical
// inputs always produce an identical ledger. A run that never triggers is
// valid and returns an empty ledger with zero metrics.
//
// A position still open when the series ends never completed a round trip
// and is not recorded in the ledger.
func Simulate(params Params, series []market.Observation) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if err := validateSeries(series); err != nil {
		return nil, err
	}

	result := &Result{Params: params}
	if len(series) > 0 {
		result.Symbol = series[0].Symbol
	}

	closes := market.Closes(series)

	long := false
	entryIdx := -1
	entryPrice := 0.0
	lastEntryEval := -1

	for i := range series {
		if long && i > entryIdx {
			if reason, exit := checkExit(params, closes, i, entryIdx, entryPrice); exit {
				trade := TradeRecord{
					Symbol:     result.Symbol,
					EntryDate:  series[entryIdx].Date,
					EntryPrice: entryPrice,
					ExitDate:   series[i].Date,
					ExitPrice:  closes[i],
					ExitReason: reason,
					Return:     (closes[i] - entryPrice) / entryPrice,
				}
				result.Trades = append(result.Trades, trade)
				long = false
				entryIdx = -1
			}
		}

		if !long {
			// Entry evaluation is gated by the rebalance frequency; exit
			// checks above run every date regardless.
			if lastEntryEval >= 0 && i-lastEntryEval < params.RebalanceFrequency {
				continue
			}
			lastEntryEval = i

			if checkEntry(params, closes, i) {
				long = true
				entryIdx = i
				entryPrice = closes[i]
			}
		}
	}

	result.Metrics = ComputeMetrics(result.Trades)
	return result, nil
}

// checkEntry evaluates the entry rule at index i. Insufficient lookback
// history is a skip, never a default.
func checkEntry(params Params, closes []float64, i int) bool {
	switch params.Strategy {
	case StrategyMeanReversion:
		// Deviation of today's close below its rolling mean (window
		// includes today).
		if i+1 < params.LookbackPeriod {
			return false
		}
		window := closes[i+1-params.LookbackPeriod : i+1]
		mean := formulas.Mean(window)
		if mean == 0 {
			return false
		}
		deviation := (closes[i] - mean) / mean
		return deviation <= params.BuyThreshold

	case StrategyMomentum:
		if i < params.LookbackPeriod {
			return false
		}
		base := closes[i-params.LookbackPeriod]
		if base == 0 {
			return false
		}
		momentum := (closes[i] - base) / base
		return momentum >= params.BuyThreshold
	}

	return false
}

// checkExit evaluates exit conditions at index i in priority order:
// rule-based exits first, then the forced max-hold exit.
func checkExit(params Params, closes []float64, i, entryIdx int, entryPrice float64) (string, bool) {
	gain := (closes[i] - entryPrice) / entryPrice

	switch params.Strategy {
	case StrategyMeanReversion:
		if gain >= params.SellThreshold {
			return ExitRule, true
		}
	case StrategyMomentum:
		if i >= params.LookbackPeriod {
			base := closes[i-params.LookbackPeriod]
			if base != 0 && (closes[i]-base)/base <= 0 {
				return ExitRule, true
			}
		}
	}

	if params.StopLoss < 0 && gain <= params.StopLoss {
		return ExitRule, true
	}

	if i-entryIdx >= params.MaxHoldDays {
		return ExitMaxHold, true
	}

	return "", false
}

// validateSeries rejects malformed input: out-of-order dates or unusable
// prices. Gaps between dates are fine; halts are expected.
func validateSeries(series []market.Observation) error {
	for i, obs := range series {
		if obs.Close <= 0 || math.IsNaN(obs.Close) || math.IsInf(obs.Close, 0) {
			return fmt.Errorf("malformed price series: bad close %v at %s (index %d)", obs.Close, obs.Date, i)
		}
		if i > 0 && series[i-1].Date >= obs.Date {
			return fmt.Errorf("malformed price series: dates not strictly ascending at %s (index %d)", obs.Date, i)
		}
	}
	return nil
}
