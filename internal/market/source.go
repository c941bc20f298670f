package market

import "sort"

// Source supplies read-only historical observations per instrument.
//
// Implementations must return series ordered ascending by date. Gaps from
// trading halts are expected and are not errors.
type Source interface {
	// Symbols lists the instruments the source knows about.
	Symbols() ([]string, error)

	// Series returns all observations for a symbol dated on or before
	// `upTo`, ascending. An empty upTo means no cutoff.
	Series(symbol string, upTo string) ([]Observation, error)
}

// MemorySource is an in-memory Source, used in tests and wherever a caller
// already holds the observations.
type MemorySource struct {
	series map[string][]Observation
}

// NewMemorySource builds a MemorySource from per-symbol series. Each series
// is sorted ascending by date defensively.
func NewMemorySource(series map[string][]Observation) *MemorySource {
	copied := make(map[string][]Observation, len(series))
	for symbol, obs := range series {
		s := make([]Observation, len(obs))
		copy(s, obs)
		sort.Slice(s, func(i, j int) bool { return s[i].Date < s[j].Date })
		copied[symbol] = s
	}
	return &MemorySource{series: copied}
}

// Symbols lists symbols in ascending order.
func (m *MemorySource) Symbols() ([]string, error) {
	symbols := make([]string, 0, len(m.series))
	for symbol := range m.series {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols, nil
}

// Series returns the stored series up to the cutoff date.
func (m *MemorySource) Series(symbol string, upTo string) ([]Observation, error) {
	s := m.series[symbol]
	if upTo == "" {
		return s, nil
	}
	return TruncateAfter(s, upTo), nil
}
