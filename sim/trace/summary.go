package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions     int
	ChangedDecisions   int // decisions that overrode the committed floor
	MeanRegret         float64
	MaxRegret          float64
	UniqueTargets      int
	TargetDistribution map[int]int    // floor → times chosen
	DecisionsBySide    map[string]int // side → decisions
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		TargetDistribution: make(map[int]int),
		DecisionsBySide:    make(map[string]int),
	}
	if st == nil || len(st.Decisions) == 0 {
		return summary
	}

	summary.TotalDecisions = len(st.Decisions)
	totalRegret := 0.0
	for _, d := range st.Decisions {
		summary.TargetDistribution[d.Chosen]++
		summary.DecisionsBySide[d.Side]++
		if d.Changed() {
			summary.ChangedDecisions++
		}
		totalRegret += d.Regret
		if d.Regret > summary.MaxRegret {
			summary.MaxRegret = d.Regret
		}
	}
	summary.MeanRegret = totalRegret / float64(len(st.Decisions))
	summary.UniqueTargets = len(summary.TargetDistribution)

	return summary
}
