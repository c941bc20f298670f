package optimizer

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// ResultRepository appends optimization results. Rows are keyed by result
// uuid and grouped under the run uuid that produced them.
type ResultRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewResultRepository creates a new optimization result repository
func NewResultRepository(db *sql.DB, log zerolog.Logger) *ResultRepository {
	return &ResultRepository{
		db:  db,
		log: log.With().Str("repository", "optimization_result").Logger(),
	}
}

// AppendRun stores every result of one optimization run.
func (r *ResultRepository) AppendRun(runUUID string, results []Result) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for _, result := range results {
		blob, err := msgpack.Marshal(result.Params)
		if err != nil {
			return fmt.Errorf("failed to encode parameters: %w", err)
		}

		var errText interface{}
		if result.Error != "" {
			errText = result.Error
		}

		_, err = tx.Exec(`
			INSERT INTO optimization_results
			(uuid, run_uuid, rank, status, score, total_return, sharpe_ratio,
			 max_drawdown, trade_count, parameters, error, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			result.UUID,
			runUUID,
			result.Rank,
			result.Status,
			result.Score,
			result.Metrics.TotalReturn,
			result.Metrics.SharpeRatio,
			result.Metrics.MaxDrawdown,
			result.Metrics.TradeCount,
			blob,
			errText,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert optimization result %s: %w", result.UUID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit optimization results: %w", err)
	}

	return nil
}

// GetRun returns a run's results ordered by rank (FAILED rows last).
func (r *ResultRepository) GetRun(runUUID string) ([]Result, error) {
	rows, err := r.db.Query(`
		SELECT uuid, rank, status, score, total_return, sharpe_ratio,
		       max_drawdown, trade_count, parameters, error
		FROM optimization_results
		WHERE run_uuid = ?
		ORDER BY CASE WHEN rank = 0 THEN 1 ELSE 0 END, rank ASC
	`, runUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to query optimization results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var result Result
		var blob []byte
		var errText sql.NullString

		err := rows.Scan(
			&result.UUID,
			&result.Rank,
			&result.Status,
			&result.Score,
			&result.Metrics.TotalReturn,
			&result.Metrics.SharpeRatio,
			&result.Metrics.MaxDrawdown,
			&result.Metrics.TradeCount,
			&blob,
			&errText,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan optimization result: %w", err)
		}

		if err := msgpack.Unmarshal(blob, &result.Params); err != nil {
			return nil, fmt.Errorf("failed to decode parameters for %s: %w", result.UUID, err)
		}
		if errText.Valid {
			result.Error = errText.String
		}

		results = append(results, result)
	}

	return results, rows.Err()
}
