package backtest

import (
	"github.com/quantpool/advisor/pkg/formulas"
)

// Exit reasons
const (
	ExitRule    = "rule_exit"
	ExitMaxHold = "max_hold_exit"
)

// TradeRecord is one completed round trip in the ledger.
type TradeRecord struct {
	Symbol     string  `json:"symbol"`
	EntryDate  string  `json:"entry_date"`
	EntryPrice float64 `json:"entry_price"`
	ExitDate   string  `json:"exit_date"`
	ExitPrice  float64 `json:"exit_price"`
	ExitReason string  `json:"exit_reason"`
	Return     float64 `json:"return"` // realized fractional return
}

// Metrics are the aggregate performance numbers of a ledger.
type Metrics struct {
	TotalReturn float64 `json:"total_return"` // compounded, fractional
	SharpeRatio float64 `json:"sharpe_ratio"`
	MaxDrawdown float64 `json:"max_drawdown"` // fractional, positive
	TradeCount  int     `json:"trade_count"`
}

// Result is the outcome of one simulation run: the ledger plus its metrics.
type Result struct {
	Symbol  string        `json:"symbol"`
	Params  Params        `json:"params"`
	Trades  []TradeRecord `json:"trades"`
	Metrics Metrics       `json:"metrics"`
}

// ComputeMetrics derives aggregate metrics from a trade ledger. An empty
// ledger is valid and yields all-zero metrics.
//
// Total return compounds the per-trade returns; max drawdown is taken over
// the cumulative equity curve those returns trace; Sharpe is annualized
// from the ledger's return series.
func ComputeMetrics(trades []TradeRecord) Metrics {
	m := Metrics{TradeCount: len(trades)}
	if len(trades) == 0 {
		return m
	}

	returns := make([]float64, len(trades))
	equity := make([]float64, len(trades)+1)
	equity[0] = 1.0
	for i, trade := range trades {
		returns[i] = trade.Return
		equity[i+1] = equity[i] * (1 + trade.Return)
	}

	m.TotalReturn = equity[len(equity)-1] - 1

	if sharpe := formulas.CalculateSharpeRatio(returns, 0, 252); sharpe != nil {
		m.SharpeRatio = *sharpe
	}

	if mdd := formulas.CalculateMaxDrawdown(equity); mdd != nil {
		m.MaxDrawdown = *mdd
	}

	return m
}
