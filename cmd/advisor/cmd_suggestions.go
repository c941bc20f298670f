package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quantpool/advisor/internal/modules/pool"
)

var suggestionsCmd = &cobra.Command{
	Use:   "suggestions",
	Short: "Review and act on pool suggestions",
}

var suggestionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending suggestions",
	RunE:  runSuggestionsList,
}

var suggestionsConfirmCmd = &cobra.Command{
	Use:   "confirm <uuid>",
	Short: "Confirm a suggestion and apply the membership change",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggestionsConfirm,
}

var suggestionsIgnoreCmd = &cobra.Command{
	Use:   "ignore <uuid>",
	Short: "Ignore a suggestion without changing the pool",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggestionsIgnore,
}

func init() {
	suggestionsCmd.AddCommand(suggestionsListCmd)
	suggestionsCmd.AddCommand(suggestionsConfirmCmd)
	suggestionsCmd.AddCommand(suggestionsIgnoreCmd)
}

func runSuggestionsList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	repo := pool.NewSuggestionRepository(a.db.Conn(), a.log)

	pending, err := repo.ListPending()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("No pending suggestions")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "UUID\tACTION\tSYMBOL\tSCORE\tDATE\tREASON")
	for _, s := range pending {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%s\t%s\n", s.UUID, s.Action, s.Symbol, s.Score, s.Date, s.Reason)
	}
	return w.Flush()
}

func runSuggestionsConfirm(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	suggestionRepo := pool.NewSuggestionRepository(a.db.Conn(), a.log)
	membershipRepo := pool.NewMembershipRepository(a.db.Conn(), a.log)

	s, err := suggestionRepo.Get(args[0])
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("no suggestion with uuid %s", args[0])
	}
	if s.Status != pool.StatusPending {
		return fmt.Errorf("suggestion %s is %s, only pending suggestions can be confirmed", s.UUID, s.Status)
	}

	switch s.Action {
	case pool.ActionAdd:
		if _, err := membershipRepo.Activate(s.Symbol, s.Date, s.Reason); err != nil {
			return err
		}
	case pool.ActionRemove:
		if err := membershipRepo.Deactivate(s.Symbol, s.Date, s.Reason); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown suggestion action %q", s.Action)
	}

	if err := suggestionRepo.UpdateStatus(s.UUID, pool.StatusConfirmed); err != nil {
		return err
	}

	fmt.Printf("Confirmed %s %s\n", s.Action, s.Symbol)
	return nil
}

func runSuggestionsIgnore(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	repo := pool.NewSuggestionRepository(a.db.Conn(), a.log)

	if err := repo.UpdateStatus(args[0], pool.StatusIgnored); err != nil {
		return err
	}

	fmt.Printf("Ignored suggestion %s\n", args[0])
	return nil
}
