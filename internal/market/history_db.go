package market

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/rs/zerolog"
)

// HistoryDB reads historical observations from per-symbol sqlite files laid
// out as <historyDir>/<SYMBOL>.db, each with a daily_prices table. The files
// are produced by the external data-acquisition service and treated as
// read-only here.
type HistoryDB struct {
	historyDir string
	log        zerolog.Logger
}

// NewHistoryDB creates a new history database accessor
func NewHistoryDB(historyDir string, log zerolog.Logger) *HistoryDB {
	return &HistoryDB{
		historyDir: historyDir,
		log:        log.With().Str("component", "history_db").Logger(),
	}
}

// Symbols lists the symbols that have a history file.
func (h *HistoryDB) Symbols() ([]string, error) {
	entries, err := os.ReadDir(h.historyDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read history dir: %w", err)
	}

	var symbols []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".db") {
			continue
		}
		symbols = append(symbols, strings.TrimSuffix(name, ".db"))
	}

	sort.Strings(symbols)
	return symbols, nil
}

// Series fetches all observations for a symbol dated on or before upTo,
// ascending by date. Missing dates (halts) are simply absent rows.
func (h *HistoryDB) Series(symbol string, upTo string) ([]Observation, error) {
	db, err := h.openHistoryDB(symbol)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `
		SELECT date, open_price, high_price, low_price, close_price, volume,
		       turnover, pe_ratio, pb_ratio, roe
		FROM daily_prices
	`
	args := []interface{}{}
	if upTo != "" {
		query += " WHERE date <= ?"
		args = append(args, upTo)
	}
	query += " ORDER BY date ASC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily prices for %s: %w", symbol, err)
	}
	defer rows.Close()

	var series []Observation
	for rows.Next() {
		obs := Observation{Symbol: symbol}
		var volume sql.NullFloat64
		var turnover, peRatio, pbRatio, roe sql.NullFloat64

		err := rows.Scan(&obs.Date, &obs.Open, &obs.High, &obs.Low, &obs.Close,
			&volume, &turnover, &peRatio, &pbRatio, &roe)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily price for %s: %w", symbol, err)
		}

		if volume.Valid {
			obs.Volume = volume.Float64
		}
		if turnover.Valid {
			obs.Turnover = &turnover.Float64
		}
		if peRatio.Valid {
			obs.PERatio = &peRatio.Float64
		}
		if pbRatio.Valid {
			obs.PBRatio = &pbRatio.Float64
		}
		if roe.Valid {
			obs.ROE = &roe.Float64
		}

		series = append(series, obs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily prices for %s: %w", symbol, err)
	}

	return series, nil
}

// openHistoryDB opens the per-symbol history database read-only
func (h *HistoryDB) openHistoryDB(symbol string) (*sql.DB, error) {
	dbPath := filepath.Join(h.historyDir, fmt.Sprintf("%s.db", symbol))

	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("no history database for %s: %w", symbol, err)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open history database for %s: %w", symbol, err)
	}

	return db, nil
}
