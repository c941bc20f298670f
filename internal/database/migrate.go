package database

import "fmt"

// Migrate creates the application schema if it does not exist.
//
// The suggestions table carries a unique index on (symbol, score_date,
// action) so that replaying a scoring run cannot emit duplicates, and
// pool_memberships carries a partial unique index so that at most one ACTIVE
// membership can exist per symbol.
func (db *DB) Migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS score_snapshots (
			symbol        TEXT NOT NULL,
			score_date    TEXT NOT NULL,
			score         REAL NOT NULL,
			factor_scores BLOB,
			created_at    TIMESTAMP NOT NULL,
			PRIMARY KEY (symbol, score_date)
		)`,
		`CREATE TABLE IF NOT EXISTS pool_memberships (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol       TEXT NOT NULL,
			entry_date   TEXT NOT NULL,
			exit_date    TEXT,
			entry_reason TEXT NOT NULL,
			exit_reason  TEXT,
			status       TEXT NOT NULL DEFAULT 'ACTIVE'
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_memberships_one_active
			ON pool_memberships (symbol) WHERE status = 'ACTIVE'`,
		`CREATE TABLE IF NOT EXISTS suggestions (
			uuid       TEXT PRIMARY KEY,
			symbol     TEXT NOT NULL,
			action     TEXT NOT NULL,
			reason     TEXT NOT NULL,
			score      REAL NOT NULL,
			score_date TEXT NOT NULL,
			status     TEXT NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_suggestions_dedupe
			ON suggestions (symbol, score_date, action)`,
		`CREATE TABLE IF NOT EXISTS optimization_results (
			uuid         TEXT PRIMARY KEY,
			run_uuid     TEXT NOT NULL,
			rank         INTEGER,
			status       TEXT NOT NULL,
			score        REAL NOT NULL,
			total_return REAL NOT NULL,
			sharpe_ratio REAL NOT NULL,
			max_drawdown REAL NOT NULL,
			trade_count  INTEGER NOT NULL,
			parameters   BLOB NOT NULL,
			error        TEXT,
			created_at   TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_optimization_results_run
			ON optimization_results (run_uuid, rank)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
