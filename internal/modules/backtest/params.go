package backtest

import "fmt"

// Strategy rule sets
const (
	StrategyMeanReversion = "mean_reversion"
	StrategyMomentum      = "momentum"
)

// Params is one parameterization of the entry/exit rule set.
//
// BuyThreshold is the entry trigger: for mean reversion, the (negative)
// deviation below the rolling mean; for momentum, the (positive) lookback
// return. SellThreshold is the rule-exit gain from entry for mean
// reversion; momentum exits on reversal. StopLoss, when negative, forces a
// rule exit at or below that loss. RebalanceFrequency gates how often entry
// rules are evaluated while flat; exits are checked every date.
type Params struct {
	Strategy           string  `json:"strategy"`
	LookbackPeriod     int     `json:"lookback_period"`
	BuyThreshold       float64 `json:"buy_threshold"`
	SellThreshold      float64 `json:"sell_threshold"`
	MaxHoldDays        int     `json:"max_hold_days"`
	RebalanceFrequency int     `json:"rebalance_frequency"`
	StopLoss           float64 `json:"stop_loss"` // 0 disables
}

// DefaultParams mirrors the tuned mean-reversion defaults.
func DefaultParams() Params {
	return Params{
		Strategy:           StrategyMeanReversion,
		LookbackPeriod:     10,
		BuyThreshold:       -0.05,
		SellThreshold:      0.03,
		MaxHoldDays:        15,
		RebalanceFrequency: 1,
		StopLoss:           0,
	}
}

// Validate checks the parameterization before a run.
func (p Params) Validate() error {
	switch p.Strategy {
	case StrategyMeanReversion, StrategyMomentum:
	default:
		return fmt.Errorf("unknown strategy %q", p.Strategy)
	}

	if p.LookbackPeriod < 2 {
		return fmt.Errorf("lookback_period must be at least 2, got %d", p.LookbackPeriod)
	}
	if p.MaxHoldDays < 1 {
		return fmt.Errorf("max_hold_days must be at least 1, got %d", p.MaxHoldDays)
	}
	if p.RebalanceFrequency < 1 {
		return fmt.Errorf("rebalance_frequency must be at least 1, got %d", p.RebalanceFrequency)
	}

	switch p.Strategy {
	case StrategyMeanReversion:
		if p.BuyThreshold >= 0 {
			return fmt.Errorf("mean reversion buy_threshold must be negative, got %v", p.BuyThreshold)
		}
		if p.SellThreshold <= 0 {
			return fmt.Errorf("mean reversion sell_threshold must be positive, got %v", p.SellThreshold)
		}
	case StrategyMomentum:
		if p.BuyThreshold <= 0 {
			return fmt.Errorf("momentum buy_threshold must be positive, got %v", p.BuyThreshold)
		}
	}

	if p.StopLoss > 0 {
		return fmt.Errorf("stop_loss must be zero or negative, got %v", p.StopLoss)
	}

	return nil
}
