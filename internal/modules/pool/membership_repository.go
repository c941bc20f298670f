package pool

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// MembershipRepository handles pool membership persistence. The underlying
// table carries a partial unique index on (symbol) WHERE status='ACTIVE', so
// the at-most-one-active invariant holds even under races.
type MembershipRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *sql.DB, log zerolog.Logger) *MembershipRepository {
	return &MembershipRepository{
		db:  db,
		log: log.With().Str("repository", "pool_membership").Logger(),
	}
}

// Activate opens an ACTIVE membership for a symbol. Fails when the symbol
// already has one.
func (r *MembershipRepository) Activate(symbol, entryDate, reason string) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO pool_memberships (symbol, entry_date, entry_reason, status)
		VALUES (?, ?, ?, ?)
	`, symbol, entryDate, reason, MembershipActive)
	if err != nil {
		return 0, fmt.Errorf("failed to activate membership for %s: %w", symbol, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read membership id for %s: %w", symbol, err)
	}

	return id, nil
}

// Deactivate closes the ACTIVE membership of a symbol, recording exit date
// and reason. A symbol with no active membership is a no-op.
func (r *MembershipRepository) Deactivate(symbol, exitDate, reason string) error {
	_, err := r.db.Exec(`
		UPDATE pool_memberships
		SET status = ?, exit_date = ?, exit_reason = ?
		WHERE symbol = ? AND status = ?
	`, MembershipRemoved, exitDate, reason, symbol, MembershipActive)
	if err != nil {
		return fmt.Errorf("failed to deactivate membership for %s: %w", symbol, err)
	}

	return nil
}

// ActiveSymbols returns the set of symbols currently in the pool.
func (r *MembershipRepository) ActiveSymbols() (map[string]bool, error) {
	rows, err := r.db.Query(`
		SELECT symbol FROM pool_memberships WHERE status = ?
	`, MembershipActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query active memberships: %w", err)
	}
	defer rows.Close()

	active := make(map[string]bool)
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		active[symbol] = true
	}

	return active, rows.Err()
}

// History returns all membership stints for a symbol, newest first.
func (r *MembershipRepository) History(symbol string) ([]Membership, error) {
	rows, err := r.db.Query(`
		SELECT id, symbol, entry_date, exit_date, entry_reason, exit_reason, status
		FROM pool_memberships
		WHERE symbol = ?
		ORDER BY id DESC
	`, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query membership history for %s: %w", symbol, err)
	}
	defer rows.Close()

	var history []Membership
	for rows.Next() {
		var m Membership
		var exitDate, exitReason sql.NullString

		err := rows.Scan(&m.ID, &m.Symbol, &m.EntryDate, &exitDate, &m.EntryReason, &exitReason, &m.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}

		if exitDate.Valid {
			m.ExitDate = &exitDate.String
		}
		if exitReason.Valid {
			m.ExitReason = &exitReason.String
		}

		history = append(history, m)
	}

	return history, rows.Err()
}
