package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/quantpool/advisor/internal/market"
	"github.com/quantpool/advisor/internal/modules/backtest"
	"github.com/quantpool/advisor/internal/modules/optimizer"
)

var (
	optimizeStrategy string
	optimizeSymbols  []string
	optimizeGridJSON string
	optimizeGridFile string
	optimizeUpTo     string
	optimizeTop      int
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Grid-search simulation parameters over historical data",
	Long: `Expand a parameter grid, simulate every combination over the selected
instruments' history and rank the combinations. Results are persisted under
a fresh run id.

The grid is a JSON object mapping parameter names to candidate values:

  advisor optimize --symbols AAA,BBB \
    --grid '{"lookback_period": [5, 10], "buy_threshold": [-0.03, -0.05]}'

Interrupting a run keeps the combinations that already finished.`,
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVar(&optimizeStrategy, "strategy", backtest.StrategyMeanReversion, "Strategy: mean_reversion or momentum")
	optimizeCmd.Flags().StringSliceVar(&optimizeSymbols, "symbols", nil, "Symbols to simulate (default: all with history)")
	optimizeCmd.Flags().StringVar(&optimizeGridJSON, "grid", "", "Parameter grid as inline JSON")
	optimizeCmd.Flags().StringVar(&optimizeGridFile, "grid-file", "", "Parameter grid JSON file")
	optimizeCmd.Flags().StringVar(&optimizeUpTo, "up-to", "", "Only use history dated on or before this date (YYYY-MM-DD)")
	optimizeCmd.Flags().IntVar(&optimizeTop, "top", 10, "Number of ranked results to print")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	grid, err := loadGrid()
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	history := market.NewHistoryDB(a.cfg.HistoryDir, a.log)

	symbols := optimizeSymbols
	if len(symbols) == 0 {
		symbols, err = history.Symbols()
		if err != nil {
			return err
		}
	}
	if len(symbols) == 0 {
		return fmt.Errorf("no instruments to simulate")
	}

	seriesBySymbol := make(map[string][]market.Observation, len(symbols))
	for _, symbol := range symbols {
		series, err := history.Series(symbol, optimizeUpTo)
		if err != nil {
			return fmt.Errorf("failed to load history for %s: %w", symbol, err)
		}
		seriesBySymbol[symbol] = series
	}

	base := backtest.DefaultParams()
	base.Strategy = optimizeStrategy
	if optimizeStrategy == backtest.StrategyMomentum {
		base.BuyThreshold = 0.05
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opt := optimizer.New(a.cfg.OptimizerWorkers, a.log)
	results, runErr := opt.Optimize(ctx, grid, base, seriesBySymbol)

	if len(results) > 0 {
		runUUID := uuid.New().String()
		repo := optimizer.NewResultRepository(a.db.Conn(), a.log)
		if err := repo.AppendRun(runUUID, results); err != nil {
			return err
		}
		fmt.Printf("Run %s: %d result(s)\n", runUUID, len(results))
		printResults(results, optimizeTop)
	}

	if runErr != nil {
		return fmt.Errorf("optimization incomplete: %w", runErr)
	}
	return nil
}

func loadGrid() (optimizer.Grid, error) {
	var raw []byte
	switch {
	case optimizeGridJSON != "" && optimizeGridFile != "":
		return nil, fmt.Errorf("--grid and --grid-file are mutually exclusive")
	case optimizeGridJSON != "":
		raw = []byte(optimizeGridJSON)
	case optimizeGridFile != "":
		data, err := os.ReadFile(optimizeGridFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read grid file: %w", err)
		}
		raw = data
	default:
		return nil, fmt.Errorf("a parameter grid is required (--grid or --grid-file)")
	}

	var grid optimizer.Grid
	if err := json.Unmarshal(raw, &grid); err != nil {
		return nil, fmt.Errorf("failed to parse parameter grid: %w", err)
	}
	return grid, nil
}

func printResults(results []optimizer.Result, top int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tSCORE\tRETURN\tSHARPE\tDRAWDOWN\tTRADES\tPARAMETERS")
	shown := 0
	for _, r := range results {
		if r.Status != optimizer.StatusOK {
			continue
		}
		params, _ := json.Marshal(r.Combination)
		fmt.Fprintf(w, "%d\t%.2f\t%.2f%%\t%.2f\t%.2f%%\t%d\t%s\n",
			r.Rank, r.Score,
			r.Metrics.TotalReturn*100, r.Metrics.SharpeRatio,
			r.Metrics.MaxDrawdown*100, r.Metrics.TradeCount,
			params)
		shown++
		if shown >= top {
			break
		}
	}
	w.Flush()

	failed := 0
	for _, r := range results {
		if r.Status == optimizer.StatusFailed {
			failed++
		}
	}
	if failed > 0 {
		fmt.Printf("%d combination(s) failed; see logs\n", failed)
	}
}
