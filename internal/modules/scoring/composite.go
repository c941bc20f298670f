package scoring

import (
	"sort"
	"time"
)

// Snapshot is the persisted composite score of one instrument on one date,
// together with the per-factor normalized ranks that produced it.
type Snapshot struct {
	Symbol       string             `json:"symbol"`
	Date         string             `json:"date"`
	Score        float64            `json:"score"`
	FactorScores map[string]float64 `json:"factor_scores"`
	CreatedAt    time.Time          `json:"created_at"`
}

// CompositeScore combines normalized factor scores into one composite in
// [0,100].
//
// Weights are renormalized to sum to 1 over the factors that actually have a
// defined normalized value for this instrument, so a missing factor degrades
// gracefully instead of dragging the composite toward zero. The result is
// clamped to [0,100] as a final defense. With no defined factors the
// composite is undefined and nil is returned.
func CompositeScore(factorScores map[string]float64, weights Weights) *float64 {
	var weightSum float64
	for name := range factorScores {
		weightSum += weights.Get(name)
	}
	if weightSum == 0 {
		return nil
	}

	var score float64
	for name, normalized := range factorScores {
		score += normalized * (weights.Get(name) / weightSum)
	}

	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	return &score
}

// SortSnapshots orders snapshots descending by composite score, breaking
// ties by ascending symbol so runs over identical inputs produce identical
// orderings.
func SortSnapshots(snapshots []Snapshot) {
	sort.Slice(snapshots, func(i, j int) bool {
		if snapshots[i].Score != snapshots[j].Score {
			return snapshots[i].Score > snapshots[j].Score
		}
		return snapshots[i].Symbol < snapshots[j].Symbol
	})
}
