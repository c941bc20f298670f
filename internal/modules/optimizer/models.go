package optimizer

import (
	"math"
	"sort"

	"github.com/quantpool/advisor/internal/modules/backtest"
)

// Result statuses
const (
	StatusOK     = "OK"
	StatusFailed = "FAILED"
)

// Result is the outcome of evaluating one parameter combination.
type Result struct {
	UUID        string            `json:"uuid"`
	Combination Combination       `json:"combination"`
	Params      backtest.Params   `json:"params"`
	Metrics     backtest.Metrics  `json:"metrics"`
	Score       float64           `json:"score"`
	Status      string            `json:"status"`
	Error       string            `json:"error,omitempty"`
	Rank        int               `json:"rank"` // 1-based among OK results, 0 for FAILED
}

// RankScore converts aggregate metrics into the composite ranking score.
//
//	score = 0.4·total_return + 0.3·(20·sharpe) − 0.2·max_drawdown
//	      + 0.1·min(trade_count/100, 1)·10
//
// with return and drawdown expressed as percentages.
func RankScore(m backtest.Metrics) float64 {
	totalReturnPct := m.TotalReturn * 100
	maxDrawdownPct := m.MaxDrawdown * 100
	tradeFactor := math.Min(float64(m.TradeCount)/100, 1)

	return 0.4*totalReturnPct + 0.3*(20*m.SharpeRatio) - 0.2*maxDrawdownPct + 0.1*tradeFactor*10
}

// SortResults orders results for reporting: OK results descending by score
// (ties broken by higher total return, then fewer trades, preferring
// simpler configurations), FAILED results last. Ranks are assigned to OK
// results only.
func SortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if (a.Status == StatusOK) != (b.Status == StatusOK) {
			return a.Status == StatusOK
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Metrics.TotalReturn != b.Metrics.TotalReturn {
			return a.Metrics.TotalReturn > b.Metrics.TotalReturn
		}
		return a.Metrics.TradeCount < b.Metrics.TradeCount
	})

	rank := 0
	for i := range results {
		if results[i].Status == StatusOK {
			rank++
			results[i].Rank = rank
		} else {
			results[i].Rank = 0
		}
	}
}
