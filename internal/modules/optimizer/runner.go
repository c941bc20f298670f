package optimizer

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/quantpool/advisor/internal/market"
	"github.com/quantpool/advisor/internal/modules/backtest"
)

// Optimizer expands a parameter grid and evaluates every combination
// against a shared read-only set of price series.
type Optimizer struct {
	workers int
	log     zerolog.Logger
}

// New creates an optimizer. workers <= 0 uses GOMAXPROCS.
func New(workers int, log zerolog.Logger) *Optimizer {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Optimizer{
		workers: workers,
		log:     log.With().Str("component", "optimizer").Logger(),
	}
}

// Optimize runs one simulation per grid combination over the given series
// and returns every combination's result, ranked.
//
// Combinations share no mutable state and run concurrently on a worker
// pool. A combination whose simulation fails is recorded with status FAILED
// and excluded from ranking without aborting its siblings. Cancellation
// stops dispatching new combinations; results completed before the
// cancellation are still returned, alongside the context error.
func (o *Optimizer) Optimize(ctx context.Context, grid Grid, base backtest.Params, seriesBySymbol map[string][]market.Observation) ([]Result, error) {
	combos, err := grid.Expand()
	if err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(seriesBySymbol))
	for symbol := range seriesBySymbol {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	o.log.Info().
		Int("combinations", len(combos)).
		Int("instruments", len(symbols)).
		Int("workers", o.workers).
		Msg("Starting parameter optimization")

	jobs := make(chan Combination)

	var mu sync.Mutex
	var results []Result

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for _, combo := range combos {
			select {
			case jobs <- combo:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})

	for w := 0; w < o.workers; w++ {
		g.Go(func() error {
			for combo := range jobs {
				result := o.evaluate(combo, base, symbols, seriesBySymbol)
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes shutdown.
	_ = g.Wait()

	SortResults(results)

	if err := ctx.Err(); err != nil {
		o.log.Warn().
			Int("completed", len(results)).
			Int("requested", len(combos)).
			Msg("Optimization cancelled, returning completed results")
		return results, err
	}

	return results, nil
}

// evaluate runs one combination over every instrument and aggregates the
// ledgers into one result.
func (o *Optimizer) evaluate(combo Combination, base backtest.Params, symbols []string, seriesBySymbol map[string][]market.Observation) Result {
	result := Result{
		UUID:        uuid.New().String(),
		Combination: combo,
	}

	params, err := combo.Apply(base)
	if err != nil {
		result.Status = StatusFailed
		result.Error = err.Error()
		return result
	}
	result.Params = params

	var trades []backtest.TradeRecord
	for _, symbol := range symbols {
		simResult, err := backtest.Simulate(params, seriesBySymbol[symbol])
		if err != nil {
			// One bad series fails the combination, not the whole run.
			o.log.Warn().Err(err).
				Str("symbol", symbol).
				Interface("combination", combo).
				Msg("Simulation failed for combination")
			result.Status = StatusFailed
			result.Error = err.Error()
			return result
		}
		trades = append(trades, simResult.Trades...)
	}

	// Deterministic aggregate ledger regardless of worker interleaving.
	sort.Slice(trades, func(i, j int) bool {
		if trades[i].EntryDate != trades[j].EntryDate {
			return trades[i].EntryDate < trades[j].EntryDate
		}
		return trades[i].Symbol < trades[j].Symbol
	})

	result.Metrics = backtest.ComputeMetrics(trades)
	result.Score = RankScore(result.Metrics)
	result.Status = StatusOK
	return result
}
