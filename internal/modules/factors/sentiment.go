package factors

import (
	"github.com/quantpool/advisor/internal/market"
	"github.com/quantpool/advisor/pkg/formulas"
)

// Sentiment family: activity-derived signals. A pickup in volume or turnover
// relative to the instrument's own recent baseline reads as attention.

// volumeSurge is the latest volume relative to the trailing 9-day average.
func volumeSurge(series []market.Observation) *float64 {
	volumes := market.Volumes(series)
	window := volumes[len(volumes)-10:]

	current := window[len(window)-1]
	baseline := formulas.Mean(window[:len(window)-1])
	if baseline <= 0 {
		return nil
	}

	ratio := current / baseline
	return &ratio
}

// turnoverSurge is the latest turnover relative to the trailing 9-day
// average. Undefined when any day in the window is missing turnover.
func turnoverSurge(series []market.Observation) *float64 {
	window := series[len(series)-10:]

	turnovers := make([]float64, 0, len(window))
	for _, obs := range window {
		if obs.Turnover == nil {
			return nil
		}
		turnovers = append(turnovers, *obs.Turnover)
	}

	current := turnovers[len(turnovers)-1]
	baseline := formulas.Mean(turnovers[:len(turnovers)-1])
	if baseline <= 0 {
		return nil
	}

	ratio := current / baseline
	return &ratio
}
