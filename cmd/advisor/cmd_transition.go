package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantpool/advisor/internal/modules/pool"
	"github.com/quantpool/advisor/internal/modules/scoring"
)

var (
	transitionDate     string
	transitionPrevDate string
)

var transitionCmd = &cobra.Command{
	Use:   "transition",
	Short: "Evaluate pool entry/exit suggestions for a date",
	Long: `Compare a date's score snapshots against the prior snapshots and
record ADD/REMOVE suggestions for the candidate pool. Run 'advisor score'
for the date first; this command only reads persisted snapshots.`,
	RunE: runTransition,
}

func init() {
	transitionCmd.Flags().StringVar(&transitionDate, "date", time.Now().Format("2006-01-02"), "Evaluation date (YYYY-MM-DD)")
	transitionCmd.Flags().StringVar(&transitionPrevDate, "prev-date", "", "Prior snapshot date (default: most recent before --date)")
}

func runTransition(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	snapshotRepo := scoring.NewSnapshotRepository(a.db.Conn(), a.log)
	membershipRepo := pool.NewMembershipRepository(a.db.Conn(), a.log)
	suggestionRepo := pool.NewSuggestionRepository(a.db.Conn(), a.log)

	curr, err := snapshotRepo.GetByDate(transitionDate)
	if err != nil {
		return err
	}
	if len(curr) == 0 {
		return fmt.Errorf("no snapshots for %s, run 'advisor score --date %s' first", transitionDate, transitionDate)
	}

	prevDate := transitionPrevDate
	if prevDate == "" {
		prevDate, err = snapshotRepo.PriorDate(transitionDate)
		if err != nil {
			return err
		}
	}

	var prev []scoring.Snapshot
	if prevDate != "" {
		prev, err = snapshotRepo.GetByDate(prevDate)
		if err != nil {
			return err
		}
	}

	active, err := membershipRepo.ActiveSymbols()
	if err != nil {
		return err
	}

	engine := pool.NewEngine(pool.Config{
		EntryThreshold: a.cfg.EntryThreshold,
		ExitThreshold:  a.cfg.ExitThreshold,
		MaxPoolSize:    a.cfg.MaxPoolSize,
	}, a.log)

	suggestions := engine.Transition(prev, curr, active, nil)

	inserted := 0
	for _, s := range suggestions {
		ok, err := suggestionRepo.Insert(s)
		if err != nil {
			return err
		}
		if ok {
			inserted++
			fmt.Printf("%s  %-6s  %s  (score %.1f)\n", s.UUID, s.Action, s.Symbol, s.Score)
		}
	}

	fmt.Printf("%d suggestion(s) recorded for %s\n", inserted, transitionDate)
	return nil
}
