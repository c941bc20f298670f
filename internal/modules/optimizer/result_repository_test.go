package optimizer

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantpool/advisor/internal/database"
	"github.com/quantpool/advisor/internal/modules/backtest"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate())
	return db
}

func TestResultRepository_RoundTrip(t *testing.T) {
	repo := NewResultRepository(newTestDB(t).Conn(), zerolog.Nop())
	runUUID := uuid.New().String()

	params := backtest.DefaultParams()
	results := []Result{
		{
			UUID:   uuid.New().String(),
			Params: params,
			Metrics: backtest.Metrics{
				TotalReturn: 0.12, SharpeRatio: 1.1, MaxDrawdown: 0.04, TradeCount: 9,
			},
			Score:  11.5,
			Status: StatusOK,
			Rank:   1,
		},
		{
			UUID:   uuid.New().String(),
			Params: params,
			Score:  4.2,
			Status: StatusOK,
			Rank:   2,
		},
		{
			UUID:   uuid.New().String(),
			Status: StatusFailed,
			Error:  "invalid parameters",
		},
	}

	require.NoError(t, repo.AppendRun(runUUID, results))

	got, err := repo.GetRun(runUUID)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, results[0].UUID, got[0].UUID)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, 11.5, got[0].Score)
	assert.InDelta(t, 0.12, got[0].Metrics.TotalReturn, 1e-9)
	assert.Equal(t, 9, got[0].Metrics.TradeCount)
	assert.Equal(t, params, got[0].Params)

	assert.Equal(t, 2, got[1].Rank)

	// Unranked failures sort after ranked results.
	assert.Equal(t, StatusFailed, got[2].Status)
	assert.Equal(t, "invalid parameters", got[2].Error)
}

func TestResultRepository_RunsAreIsolated(t *testing.T) {
	repo := NewResultRepository(newTestDB(t).Conn(), zerolog.Nop())

	runA := uuid.New().String()
	runB := uuid.New().String()

	require.NoError(t, repo.AppendRun(runA, []Result{
		{UUID: uuid.New().String(), Status: StatusOK, Rank: 1, Params: backtest.DefaultParams()},
	}))
	require.NoError(t, repo.AppendRun(runB, []Result{
		{UUID: uuid.New().String(), Status: StatusOK, Rank: 1, Params: backtest.DefaultParams()},
		{UUID: uuid.New().String(), Status: StatusOK, Rank: 2, Params: backtest.DefaultParams()},
	}))

	gotA, err := repo.GetRun(runA)
	require.NoError(t, err)
	assert.Len(t, gotA, 1)

	gotB, err := repo.GetRun(runB)
	require.NoError(t, err)
	assert.Len(t, gotB, 2)
}
