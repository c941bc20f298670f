package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantpool/advisor/internal/market"
	"github.com/quantpool/advisor/internal/modules/factors"
	"github.com/quantpool/advisor/internal/modules/scoring"
)

var scoreDate string

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute composite score snapshots for a date",
	Long: `Compute factor values, cross-sectional percentile ranks and composite
scores for every instrument with history on the given date, persist the
snapshots and print the ranking.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreDate, "date", time.Now().Format("2006-01-02"), "Score date (YYYY-MM-DD)")
}

func runScore(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	source := market.NewHistoryDB(a.cfg.HistoryDir, a.log)
	registry := factors.NewRegistry()
	weights := scoring.DefaultWeights(registry)
	repo := scoring.NewSnapshotRepository(a.db.Conn(), a.log)

	service := scoring.NewService(source, registry, weights, repo, a.log)

	snapshots, err := service.ScoreDate(scoreDate)
	if err != nil {
		return err
	}

	if len(snapshots) == 0 {
		fmt.Printf("No scorable instruments on %s\n", scoreDate)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tSYMBOL\tSCORE")
	for i, snap := range snapshots {
		fmt.Fprintf(w, "%d\t%s\t%.2f\n", i+1, snap.Symbol, snap.Score)
	}
	return w.Flush()
}
