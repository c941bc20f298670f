package scoring

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// SnapshotRepository persists composite score snapshots keyed by
// (symbol, date). Recomputing a date overwrites that date's rows and leaves
// every other date untouched.
type SnapshotRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *sql.DB, log zerolog.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		db:  db,
		log: log.With().Str("repository", "score_snapshot").Logger(),
	}
}

// Upsert writes a snapshot, replacing any prior snapshot for the same
// (symbol, date).
func (r *SnapshotRepository) Upsert(snap Snapshot) error {
	blob, err := msgpack.Marshal(snap.FactorScores)
	if err != nil {
		return fmt.Errorf("failed to encode factor scores: %w", err)
	}

	createdAt := snap.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = r.db.Exec(`
		INSERT INTO score_snapshots (symbol, score_date, score, factor_scores, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (symbol, score_date) DO UPDATE SET
			score = excluded.score,
			factor_scores = excluded.factor_scores,
			created_at = excluded.created_at
	`,
		snap.Symbol,
		snap.Date,
		snap.Score,
		blob,
		createdAt,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert snapshot for %s@%s: %w", snap.Symbol, snap.Date, err)
	}

	return nil
}

// GetByDate returns all snapshots for a date, descending by score with
// ascending-symbol tie-break.
func (r *SnapshotRepository) GetByDate(date string) ([]Snapshot, error) {
	rows, err := r.db.Query(`
		SELECT symbol, score_date, score, factor_scores, created_at
		FROM score_snapshots
		WHERE score_date = ?
		ORDER BY score DESC, symbol ASC
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots for %s: %w", date, err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}

	return snaps, rows.Err()
}

// PriorDate returns the most recent snapshot date strictly before the given
// date, or "" when no earlier snapshots exist.
func (r *SnapshotRepository) PriorDate(date string) (string, error) {
	row := r.db.QueryRow(`
		SELECT score_date FROM score_snapshots
		WHERE score_date < ?
		ORDER BY score_date DESC
		LIMIT 1
	`, date)

	var prior string
	err := row.Scan(&prior)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to find prior snapshot date for %s: %w", date, err)
	}

	return prior, nil
}

// Get returns the snapshot for one (symbol, date), or nil when none exists.
func (r *SnapshotRepository) Get(symbol, date string) (*Snapshot, error) {
	row := r.db.QueryRow(`
		SELECT symbol, score_date, score, factor_scores, created_at
		FROM score_snapshots
		WHERE symbol = ? AND score_date = ?
	`, symbol, date)

	var snap Snapshot
	var blob []byte
	err := row.Scan(&snap.Symbol, &snap.Date, &snap.Score, &blob, &snap.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot for %s@%s: %w", symbol, date, err)
	}

	if err := decodeFactorScores(blob, &snap); err != nil {
		return nil, err
	}

	return &snap, nil
}

func scanSnapshot(rows *sql.Rows) (Snapshot, error) {
	var snap Snapshot
	var blob []byte

	if err := rows.Scan(&snap.Symbol, &snap.Date, &snap.Score, &blob, &snap.CreatedAt); err != nil {
		return Snapshot{}, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	if err := decodeFactorScores(blob, &snap); err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}

func decodeFactorScores(blob []byte, snap *Snapshot) error {
	if len(blob) == 0 {
		return nil
	}
	if err := msgpack.Unmarshal(blob, &snap.FactorScores); err != nil {
		return fmt.Errorf("failed to decode factor scores for %s@%s: %w", snap.Symbol, snap.Date, err)
	}
	return nil
}
