package scoring

import "sort"

// PercentileRanks converts the raw factor values of one date's cross-section
// into percentile ranks in [0,100].
//
// Ties share the mean of the ranks they would occupy (average-rank
// tie-breaking), so equal raw values always get equal normalized values.
// Instruments with an undefined raw value are simply absent from the input
// map and therefore from the output; they are never defaulted.
//
// The transform never compares across dates; callers invoke it once per
// factor per date.
func PercentileRanks(raw map[string]float64) map[string]float64 {
	n := len(raw)
	if n == 0 {
		return map[string]float64{}
	}

	symbols := make([]string, 0, n)
	for symbol := range raw {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool {
		a, b := raw[symbols[i]], raw[symbols[j]]
		if a != b {
			return a < b
		}
		return symbols[i] < symbols[j]
	})

	// Average ranks across runs of equal raw values, then scale so the
	// extremes land exactly on 0 and 100. A single-member population has no
	// cross-section to rank against and normalizes to the midpoint.
	ranks := make(map[string]float64, n)
	if n == 1 {
		ranks[symbols[0]] = 50
		return ranks
	}

	for i := 0; i < n; {
		j := i
		for j < n && raw[symbols[j]] == raw[symbols[i]] {
			j++
		}

		// 1-based ranks i+1 .. j averaged over the tie run
		avgRank := float64(i+1+j) / 2
		pct := (avgRank - 1) / float64(n-1) * 100
		for k := i; k < j; k++ {
			ranks[symbols[k]] = pct
		}
		i = j
	}

	return ranks
}
