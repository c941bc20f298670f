package scoring

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantpool/advisor/internal/market"
	"github.com/quantpool/advisor/internal/modules/factors"
)

// Service runs the decision-path batch pass for one date: factor
// computation, cross-sectional normalization, composite scoring, snapshot
// persistence.
type Service struct {
	source   market.Source
	registry *factors.Registry
	weights  Weights
	repo     *SnapshotRepository
	log      zerolog.Logger
}

// NewService creates a new scoring service. The repository may be nil, in
// which case snapshots are computed but not persisted (used by tests and by
// callers that only want the ranking).
func NewService(source market.Source, registry *factors.Registry, weights Weights, repo *SnapshotRepository, log zerolog.Logger) *Service {
	return &Service{
		source:   source,
		registry: registry,
		weights:  weights,
		repo:     repo,
		log:      log.With().Str("service", "scoring").Logger(),
	}
}

// ScoreDate computes composite score snapshots for every instrument with
// data on or before the given date, persists them, and returns them ordered
// descending by score (ascending symbol on ties).
//
// Instruments whose factors are all undefined on that date produce no
// snapshot rather than a defaulted one.
func (s *Service) ScoreDate(date string) ([]Snapshot, error) {
	symbols, err := s.source.Symbols()
	if err != nil {
		return nil, fmt.Errorf("failed to list symbols: %w", err)
	}
	if len(symbols) == 0 {
		return nil, nil
	}

	// Raw factor values per factor across the cross-section. Undefined
	// values are absent, which excludes the instrument from that factor's
	// ranking population.
	rawByFactor := make(map[string]map[string]float64)
	for _, f := range s.registry.All() {
		rawByFactor[f.Name] = make(map[string]float64)
	}

	for _, symbol := range symbols {
		series, err := s.source.Series(symbol, date)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("Skipping symbol, history unavailable")
			continue
		}
		if len(series) == 0 {
			continue
		}

		for _, f := range s.registry.All() {
			if raw := f.Value(series); raw != nil {
				rawByFactor[f.Name][symbol] = *raw
			}
		}
	}

	// Normalize each factor independently across the date's population.
	normalizedByFactor := make(map[string]map[string]float64, len(rawByFactor))
	for name, raw := range rawByFactor {
		normalizedByFactor[name] = PercentileRanks(raw)
	}

	// Assemble per-instrument factor maps and composites.
	perSymbol := make(map[string]map[string]float64)
	for name, normalized := range normalizedByFactor {
		for symbol, value := range normalized {
			if perSymbol[symbol] == nil {
				perSymbol[symbol] = make(map[string]float64)
			}
			perSymbol[symbol][name] = value
		}
	}

	now := time.Now()
	snapshots := make([]Snapshot, 0, len(perSymbol))
	for symbol, factorScores := range perSymbol {
		score := CompositeScore(factorScores, s.weights)
		if score == nil {
			continue
		}

		snapshots = append(snapshots, Snapshot{
			Symbol:       symbol,
			Date:         date,
			Score:        *score,
			FactorScores: factorScores,
			CreatedAt:    now,
		})
	}

	SortSnapshots(snapshots)

	if s.repo != nil {
		for _, snap := range snapshots {
			if err := s.repo.Upsert(snap); err != nil {
				return nil, err
			}
		}
	}

	s.log.Info().
		Str("date", date).
		Int("instruments", len(snapshots)).
		Msg("Scoring pass complete")

	return snapshots, nil
}
