package pool

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// SuggestionRepository persists suggestions. The table's unique index on
// (symbol, score_date, action) backs the engine's idempotency across
// process restarts: replayed suggestions insert zero rows.
type SuggestionRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSuggestionRepository creates a new suggestion repository
func NewSuggestionRepository(db *sql.DB, log zerolog.Logger) *SuggestionRepository {
	return &SuggestionRepository{
		db:  db,
		log: log.With().Str("repository", "suggestion").Logger(),
	}
}

// Insert appends a suggestion. Returns false when an identical
// (symbol, date, action) suggestion already exists.
func (r *SuggestionRepository) Insert(s Suggestion) (bool, error) {
	res, err := r.db.Exec(`
		INSERT OR IGNORE INTO suggestions
		(uuid, symbol, action, reason, score, score_date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		s.UUID,
		s.Symbol,
		s.Action,
		s.Reason,
		s.Score,
		s.Date,
		s.Status,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert suggestion for %s: %w", s.Symbol, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	return affected > 0, nil
}

// Get returns a suggestion by uuid, or nil when none exists.
func (r *SuggestionRepository) Get(suggestionUUID string) (*Suggestion, error) {
	row := r.db.QueryRow(`
		SELECT uuid, symbol, action, reason, score, score_date, status, created_at, updated_at
		FROM suggestions
		WHERE uuid = ?
	`, suggestionUUID)

	var s Suggestion
	err := row.Scan(&s.UUID, &s.Symbol, &s.Action, &s.Reason, &s.Score, &s.Date, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan suggestion %s: %w", suggestionUUID, err)
	}

	return &s, nil
}

// ListPending returns pending suggestions, oldest first.
func (r *SuggestionRepository) ListPending() ([]Suggestion, error) {
	rows, err := r.db.Query(`
		SELECT uuid, symbol, action, reason, score, score_date, status, created_at, updated_at
		FROM suggestions
		WHERE status = ?
		ORDER BY created_at ASC
	`, StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []Suggestion
	for rows.Next() {
		var s Suggestion
		err := rows.Scan(&s.UUID, &s.Symbol, &s.Action, &s.Reason, &s.Score, &s.Date, &s.Status, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		suggestions = append(suggestions, s)
	}

	return suggestions, rows.Err()
}

// UpdateStatus moves a suggestion to CONFIRMED or IGNORED. Driven by the
// external confirmation collaborator.
func (r *SuggestionRepository) UpdateStatus(suggestionUUID, status string) error {
	if status != StatusConfirmed && status != StatusIgnored {
		return fmt.Errorf("invalid suggestion status %q", status)
	}

	res, err := r.db.Exec(`
		UPDATE suggestions
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE uuid = ? AND status = ?
	`, status, suggestionUUID, StatusPending)
	if err != nil {
		return fmt.Errorf("failed to update suggestion %s: %w", suggestionUUID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
