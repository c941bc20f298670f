package pool

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantpool/advisor/internal/modules/scoring"
)

func testConfig() Config {
	return Config{EntryThreshold: 90, ExitThreshold: 80, MaxPoolSize: 20}
}

func snap(symbol string, date string, score float64) scoring.Snapshot {
	return scoring.Snapshot{Symbol: symbol, Date: date, Score: score}
}

func TestEngine_Transition_EntryAndExit(t *testing.T) {
	engine := NewEngine(testConfig(), zerolog.Nop())

	prev := []scoring.Snapshot{
		snap("NEW", "2024-03-04", 85),
		snap("OLD", "2024-03-04", 85),
	}
	curr := []scoring.Snapshot{
		snap("NEW", "2024-03-05", 92),
		snap("OLD", "2024-03-05", 78),
	}
	active := map[string]bool{"OLD": true}

	suggestions := engine.Transition(prev, curr, active, nil)

	require.Len(t, suggestions, 2)

	byAction := map[string]Suggestion{}
	for _, s := range suggestions {
		byAction[s.Action] = s
	}

	add := byAction[ActionAdd]
	assert.Equal(t, "NEW", add.Symbol)
	assert.Equal(t, StatusPending, add.Status)
	assert.Equal(t, "2024-03-05", add.Date)
	assert.Contains(t, add.Reason, "entry threshold")

	remove := byAction[ActionRemove]
	assert.Equal(t, "OLD", remove.Symbol)
	assert.Equal(t, StatusPending, remove.Status)
	assert.Contains(t, remove.Reason, "exit threshold")
}

func TestEngine_Transition_IdempotentOnReplay(t *testing.T) {
	engine := NewEngine(testConfig(), zerolog.Nop())

	prev := []scoring.Snapshot{snap("NEW", "2024-03-04", 85)}
	curr := []scoring.Snapshot{snap("NEW", "2024-03-05", 92)}

	first := engine.Transition(prev, curr, nil, nil)
	require.Len(t, first, 1)

	second := engine.Transition(prev, curr, nil, nil)
	assert.Empty(t, second)
}

func TestEngine_Transition_NoFreshCrossingNoEntry(t *testing.T) {
	engine := NewEngine(testConfig(), zerolog.Nop())

	// Already above the threshold on the prior date: not a crossing.
	prev := []scoring.Snapshot{snap("HOT", "2024-03-04", 95)}
	curr := []scoring.Snapshot{snap("HOT", "2024-03-05", 96)}

	assert.Empty(t, engine.Transition(prev, curr, nil, nil))
}

func TestEngine_Transition_NoPriorSnapshotCountsAsCrossing(t *testing.T) {
	engine := NewEngine(testConfig(), zerolog.Nop())

	curr := []scoring.Snapshot{snap("IPO", "2024-03-05", 93)}

	suggestions := engine.Transition(nil, curr, nil, nil)
	require.Len(t, suggestions, 1)
	assert.Equal(t, ActionAdd, suggestions[0].Action)
	assert.Equal(t, "IPO", suggestions[0].Symbol)
}

func TestEngine_Transition_HysteresisBand(t *testing.T) {
	engine := NewEngine(testConfig(), zerolog.Nop())

	// An active member drifting inside the band keeps its seat; an outside
	// instrument inside the band never enters.
	curr := []scoring.Snapshot{
		snap("HELD", "2024-03-05", 85),
		snap("MEH", "2024-03-05", 85),
	}
	active := map[string]bool{"HELD": true}

	assert.Empty(t, engine.Transition(nil, curr, active, nil))
}

func TestEngine_Transition_CapacityTruncatesToBestCandidates(t *testing.T) {
	cfg := testConfig()
	cfg.MaxPoolSize = 2
	engine := NewEngine(cfg, zerolog.Nop())

	curr := []scoring.Snapshot{
		snap("AAA", "2024-03-05", 91),
		snap("BBB", "2024-03-05", 95),
		snap("CCC", "2024-03-05", 93),
	}
	active := map[string]bool{"ZZZ": true}

	suggestions := engine.Transition(nil, curr, active, nil)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "BBB", suggestions[0].Symbol)
}

func TestEngine_Transition_FullPoolSuggestsNoEntries(t *testing.T) {
	cfg := testConfig()
	cfg.MaxPoolSize = 1
	engine := NewEngine(cfg, zerolog.Nop())

	curr := []scoring.Snapshot{snap("AAA", "2024-03-05", 99)}
	active := map[string]bool{"ZZZ": true}

	assert.Empty(t, engine.Transition(nil, curr, active, nil))
}

func TestEngine_Transition_StopLossOverridesScore(t *testing.T) {
	engine := NewEngine(testConfig(), zerolog.Nop())

	curr := []scoring.Snapshot{snap("HELD", "2024-03-05", 95)}
	active := map[string]bool{"HELD": true}

	stopLoss := func(symbol string) (bool, string) {
		return symbol == "HELD", "position down 12% from entry"
	}

	suggestions := engine.Transition(nil, curr, active, stopLoss)

	require.Len(t, suggestions, 1)
	assert.Equal(t, ActionRemove, suggestions[0].Action)
	assert.Contains(t, suggestions[0].Reason, "stop-loss")
}

func TestEngine_Transition_EntryTieBreaksOnSymbol(t *testing.T) {
	cfg := testConfig()
	cfg.MaxPoolSize = 1
	engine := NewEngine(cfg, zerolog.Nop())

	curr := []scoring.Snapshot{
		snap("BBB", "2024-03-05", 95),
		snap("AAA", "2024-03-05", 95),
	}

	suggestions := engine.Transition(nil, curr, nil, nil)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "AAA", suggestions[0].Symbol)
}
