package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/quantpool/advisor/internal/config"
	"github.com/quantpool/advisor/internal/database"
	"github.com/quantpool/advisor/pkg/logger"
)

// rootCmd is the base command for the advisor CLI
var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Quantitative pool advisor",
	Long: `Advisor scores instruments cross-sectionally, maintains a candidate
pool with hysteresis, and optimizes simulation parameters over historical
price data.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(transitionCmd)
	rootCmd.AddCommand(suggestionsCmd)
	rootCmd.AddCommand(optimizeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the shared process-wide collaborators the subcommands need.
type app struct {
	cfg *config.Config
	log zerolog.Logger
	db  *database.DB
}

// openApp loads configuration, sets up logging, opens the application
// database and runs migrations. Callers must Close.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &app{cfg: cfg, log: log, db: db}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.log.Error().Err(err).Msg("Failed to close database")
	}
}
