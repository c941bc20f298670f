package factors

import (
	"fmt"

	"github.com/quantpool/advisor/internal/market"
)

// Factor groups
const (
	GroupMomentum  = "momentum"
	GroupSentiment = "sentiment"
	GroupValue     = "value"
	GroupQuality   = "quality"
)

// ComputeFunc maps a windowed observation series for one instrument to a raw
// factor value. It must be side-effect-free and use only the observations it
// is given; the caller guarantees the series ends at the scoring date.
// A nil result means "undefined" and excludes the instrument from that
// date's ranking population for this factor.
type ComputeFunc func(series []market.Observation) *float64

// Factor is one registered factor: a pure computation plus the metadata the
// pipeline needs to apply it.
type Factor struct {
	Name     string
	Group    string
	Lookback int // minimum observations required for a defined value
	Compute  ComputeFunc
}

// Value applies the factor to a series, enforcing the lookback requirement
// centrally so individual compute funcs only deal with well-sized windows.
func (f Factor) Value(series []market.Observation) *float64 {
	if len(series) < f.Lookback {
		return nil
	}
	return f.Compute(series)
}

// Registry is the factor table. It is built once at startup; lookups are by
// name, with no runtime type inspection.
type Registry struct {
	byName map[string]Factor
	order  []string
}

// NewRegistry builds a registry with the default factor set registered.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]Factor)}

	defaults := []Factor{
		{Name: "price_momentum", Group: GroupMomentum, Lookback: 61, Compute: priceMomentum},
		{Name: "rsi_14", Group: GroupMomentum, Lookback: 15, Compute: rsi14},
		{Name: "ma_trend", Group: GroupMomentum, Lookback: 60, Compute: maTrend},
		{Name: "volume_surge", Group: GroupSentiment, Lookback: 10, Compute: volumeSurge},
		{Name: "turnover_surge", Group: GroupSentiment, Lookback: 10, Compute: turnoverSurge},
		{Name: "price_percentile", Group: GroupValue, Lookback: 252, Compute: pricePercentile},
		{Name: "earnings_yield", Group: GroupValue, Lookback: 1, Compute: earningsYield},
		{Name: "return_stability", Group: GroupQuality, Lookback: 61, Compute: returnStability},
		{Name: "roe", Group: GroupQuality, Lookback: 1, Compute: roe},
	}

	for _, f := range defaults {
		// Defaults are static; a registration failure here is a programming error.
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}

	return r
}

// Register adds a factor to the table. Names are unique.
func (r *Registry) Register(f Factor) error {
	if f.Name == "" {
		return fmt.Errorf("factor name is required")
	}
	if f.Compute == nil {
		return fmt.Errorf("factor %q has no compute function", f.Name)
	}
	if f.Lookback < 1 {
		return fmt.Errorf("factor %q has invalid lookback %d", f.Name, f.Lookback)
	}
	if _, exists := r.byName[f.Name]; exists {
		return fmt.Errorf("factor %q is already registered", f.Name)
	}

	r.byName[f.Name] = f
	r.order = append(r.order, f.Name)
	return nil
}

// Get looks up a factor by name.
func (r *Registry) Get(name string) (Factor, error) {
	f, ok := r.byName[name]
	if !ok {
		return Factor{}, fmt.Errorf("unknown factor %q", name)
	}
	return f, nil
}

// All returns the registered factors in registration order.
func (r *Registry) All() []Factor {
	out := make([]Factor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}
