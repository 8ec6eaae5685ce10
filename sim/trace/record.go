// Package trace provides decision-trace recording for rollout analysis.
// This package has no dependencies on sim/ or sim/policy/: it stores pure data types.
package trace

import "sort"

// CandidateScore captures one candidate floor evaluated by a rollout.
type CandidateScore struct {
	Floor int
	Score float64
	// Unloaded is how many of the elevator's passengers left it during the replay.
	Unloaded int
}

// DecisionRecord captures a single rollout decision with its ranked candidates.
type DecisionRecord struct {
	Tick       int
	ElevatorID int
	Side       string
	Lane       int
	Depth      int // replayed ticks per candidate
	Previous   int // floor committed before the decision, -1 if none
	Chosen     int
	Candidates []CandidateScore // top-k candidates sorted by score desc (nil if k=0)
	Regret     float64          // best candidate score - chosen score; 0 if chosen is best
}

// Changed reports whether the decision overrode the previously committed floor.
func (r DecisionRecord) Changed() bool {
	return r.Previous != r.Chosen
}

// RankCandidates returns the top-k candidates sorted by score descending (floor
// ascending on ties) and the regret of chosen against the best one.
// The input slice is not modified.
func RankCandidates(chosen int, candidates []CandidateScore, k int) ([]CandidateScore, float64) {
	if len(candidates) == 0 {
		return nil, 0
	}

	all := make([]CandidateScore, len(candidates))
	copy(all, candidates)

	var chosenScore float64
	chosenFound := false
	for _, c := range all {
		if c.Floor == chosen {
			chosenScore = c.Score
			chosenFound = true
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		return all[i].Floor < all[j].Floor
	})

	regret := 0.0
	if chosenFound {
		regret = max(0, all[0].Score-chosenScore)
	}

	if k <= 0 {
		return nil, regret
	}
	return all[:min(k, len(all))], regret
}
