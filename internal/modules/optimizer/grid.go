package optimizer

import (
	"fmt"
	"sort"

	"github.com/quantpool/advisor/internal/modules/backtest"
)

// Grid maps parameter names to their ordered candidate values.
type Grid map[string][]float64

// Combination is one concrete point of the grid.
type Combination map[string]float64

// Expand computes the cartesian product of all grid dimensions in
// deterministic (sorted-key) order.
//
// An empty grid, or any dimension with no candidates, is a configuration
// error reported before any simulation work begins.
func (g Grid) Expand() ([]Combination, error) {
	if len(g) == 0 {
		return nil, fmt.Errorf("parameter grid is empty")
	}

	keys := make([]string, 0, len(g))
	for key := range g {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if len(g[key]) == 0 {
			return nil, fmt.Errorf("parameter grid dimension %q has no candidate values", key)
		}
	}

	combos := []Combination{{}}
	for _, key := range keys {
		next := make([]Combination, 0, len(combos)*len(g[key]))
		for _, base := range combos {
			for _, value := range g[key] {
				combo := make(Combination, len(base)+1)
				for k, v := range base {
					combo[k] = v
				}
				combo[key] = value
				next = append(next, combo)
			}
		}
		combos = next
	}

	return combos, nil
}

// Apply overlays a combination onto base simulation parameters. Grid values
// always win over the fixed base.
func (c Combination) Apply(base backtest.Params) (backtest.Params, error) {
	params := base

	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := c[key]
		switch key {
		case "lookback_period":
			params.LookbackPeriod = int(value)
		case "buy_threshold":
			params.BuyThreshold = value
		case "sell_threshold":
			params.SellThreshold = value
		case "max_hold_days":
			params.MaxHoldDays = int(value)
		case "rebalance_frequency":
			params.RebalanceFrequency = int(value)
		case "stop_loss":
			params.StopLoss = value
		default:
			return backtest.Params{}, fmt.Errorf("unknown grid parameter %q", key)
		}
	}

	return params, nil
}
