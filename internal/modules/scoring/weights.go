package scoring

import (
	"fmt"

	"github.com/quantpool/advisor/internal/modules/factors"
)

// Weights is an immutable per-factor weight configuration. It is supplied
// explicitly to the composite scorer; nothing mutates it at runtime.
type Weights struct {
	byFactor map[string]float64
}

// NewWeights builds a weight configuration from a factor-name -> weight map.
// Weights must be positive; they need not sum to 1, since the scorer
// renormalizes over the factors actually available per instrument anyway.
func NewWeights(byFactor map[string]float64) (Weights, error) {
	if len(byFactor) == 0 {
		return Weights{}, fmt.Errorf("at least one factor weight is required")
	}

	copied := make(map[string]float64, len(byFactor))
	for name, w := range byFactor {
		if w <= 0 {
			return Weights{}, fmt.Errorf("weight for factor %q must be positive, got %v", name, w)
		}
		copied[name] = w
	}

	return Weights{byFactor: copied}, nil
}

// DefaultWeights splits the standard group weights (momentum 0.30,
// sentiment 0.25, value 0.25, quality 0.20) equally among each group's
// registered factors.
func DefaultWeights(registry *factors.Registry) Weights {
	groupWeights := map[string]float64{
		factors.GroupMomentum:  0.30,
		factors.GroupSentiment: 0.25,
		factors.GroupValue:     0.25,
		factors.GroupQuality:   0.20,
	}

	groupCounts := make(map[string]int)
	for _, f := range registry.All() {
		groupCounts[f.Group]++
	}

	byFactor := make(map[string]float64)
	for _, f := range registry.All() {
		gw, ok := groupWeights[f.Group]
		if !ok || groupCounts[f.Group] == 0 {
			continue
		}
		byFactor[f.Name] = gw / float64(groupCounts[f.Group])
	}

	w, err := NewWeights(byFactor)
	if err != nil {
		// The default registry always yields a valid configuration.
		panic(err)
	}
	return w
}

// Get returns the configured weight for a factor, or 0 when the factor has
// no weight (and therefore never contributes to composites).
func (w Weights) Get(name string) float64 {
	return w.byFactor[name]
}

// Factors returns the factor names carrying a weight.
func (w Weights) Factors() []string {
	names := make([]string, 0, len(w.byFactor))
	for name := range w.byFactor {
		names = append(names, name)
	}
	return names
}
