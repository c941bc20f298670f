package pool

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quantpool/advisor/internal/modules/scoring"
)

// Config holds the hysteresis thresholds and capacity for the transition
// engine. Entry sits above exit so membership does not flap around a single
// boundary.
type Config struct {
	EntryThreshold float64
	ExitThreshold  float64
	MaxPoolSize    int
}

// StopLossFunc is the externally supplied hard-stop condition. It returns
// whether the instrument must leave the pool regardless of score, plus a
// human-readable reason.
type StopLossFunc func(symbol string) (bool, string)

// Engine turns pairs of composite score snapshots into ADD/REMOVE
// suggestions.
//
// The engine is idempotent over repeated invocations with unchanged inputs:
// it remembers which (symbol, date, action) triples it has already emitted
// and never emits them twice.
type Engine struct {
	cfg     Config
	log     zerolog.Logger
	emitted map[string]bool
}

// NewEngine creates a new transition engine
func NewEngine(cfg Config, log zerolog.Logger) *Engine {
	return &Engine{
		cfg:     cfg,
		log:     log.With().Str("component", "pool_engine").Logger(),
		emitted: make(map[string]bool),
	}
}

// Transition evaluates the current snapshots against the immediately prior
// ones and returns the suggestions for this run.
//
// active is the set of symbols with an ACTIVE membership. stopLoss may be
// nil when no hard-stop condition applies.
//
// Entry candidates are instruments outside the pool whose score crossed the
// entry threshold from below (or that have no prior snapshot). When the
// candidates would overflow MaxPoolSize, only the highest-scoring ones up to
// capacity are suggested; the rest may re-qualify on a later run.
func (e *Engine) Transition(prev, curr []scoring.Snapshot, active map[string]bool, stopLoss StopLossFunc) []Suggestion {
	prevBySymbol := make(map[string]scoring.Snapshot, len(prev))
	for _, snap := range prev {
		prevBySymbol[snap.Symbol] = snap
	}

	now := time.Now()
	var suggestions []Suggestion

	// Exit candidates first: a freed slot this run does not change entry
	// capacity, because removals are only suggestions until confirmed.
	for _, snap := range curr {
		if !active[snap.Symbol] {
			continue
		}

		var reason string
		switch {
		case snap.Score < e.cfg.ExitThreshold:
			reason = fmt.Sprintf("composite score %.1f fell below exit threshold %.1f", snap.Score, e.cfg.ExitThreshold)
		default:
			if stopLoss == nil {
				continue
			}
			hit, why := stopLoss(snap.Symbol)
			if !hit {
				continue
			}
			reason = fmt.Sprintf("stop-loss triggered: %s", why)
		}

		if s, ok := e.emit(snap, ActionRemove, reason, now); ok {
			suggestions = append(suggestions, s)
		}
	}

	// Entry candidates, ranked descending by score for the capacity cut.
	var entries []scoring.Snapshot
	for _, snap := range curr {
		if active[snap.Symbol] {
			continue
		}
		if snap.Score < e.cfg.EntryThreshold {
			continue
		}
		if prior, ok := prevBySymbol[snap.Symbol]; ok && prior.Score >= e.cfg.EntryThreshold {
			// Already above the threshold last run; not a fresh crossing.
			continue
		}
		entries = append(entries, snap)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Symbol < entries[j].Symbol
	})

	slots := e.cfg.MaxPoolSize - len(active)
	if slots < 0 {
		slots = 0
	}
	if len(entries) > slots {
		e.log.Debug().
			Int("candidates", len(entries)).
			Int("slots", slots).
			Msg("Entry candidates exceed pool capacity, truncating")
		entries = entries[:slots]
	}

	for _, snap := range entries {
		prevScore := "none"
		if prior, ok := prevBySymbol[snap.Symbol]; ok {
			prevScore = fmt.Sprintf("%.1f", prior.Score)
		}
		reason := fmt.Sprintf("composite score %.1f crossed entry threshold %.1f (prior %s)",
			snap.Score, e.cfg.EntryThreshold, prevScore)

		if s, ok := e.emit(snap, ActionAdd, reason, now); ok {
			suggestions = append(suggestions, s)
		}
	}

	return suggestions
}

// emit builds a suggestion unless the same (symbol, date, action) was
// already produced by a previous invocation.
func (e *Engine) emit(snap scoring.Snapshot, action, reason string, now time.Time) (Suggestion, bool) {
	key := snap.Symbol + "|" + snap.Date + "|" + action
	if e.emitted[key] {
		return Suggestion{}, false
	}
	e.emitted[key] = true

	return Suggestion{
		UUID:      uuid.New().String(),
		Symbol:    snap.Symbol,
		Action:    action,
		Reason:    reason,
		Score:     snap.Score,
		Date:      snap.Date,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, true
}
