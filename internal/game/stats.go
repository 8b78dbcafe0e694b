package game

// Round statistics reported to the host under one common shape,
// whatever the round variant: extras usage plus outcome tallies
// (correctness for trivia modes, skips for the speed round, items
// found for hidden object).

type RoundStatsReport struct {
	Round      int                     `json:"round"`
	Type       RoundType               `json:"type"`
	ExtrasUsed map[ExtraKind]int       `json:"extrasUsed"`
	Players    map[string]Contribution `json:"players"`
	Totals     Contribution            `json:"totals"`
}

func buildRoundStats(r *Room) RoundStatsReport {
	report := RoundStatsReport{
		Round:      r.CurrentRound,
		ExtrasUsed: make(map[ExtraKind]int, len(r.extrasUsed)),
		Players:    make(map[string]Contribution, len(r.Players)),
	}
	if r.engine != nil {
		report.Type = r.engine.Type()
	}
	for k, v := range r.extrasUsed {
		report.ExtrasUsed[k] = v
	}
	for id, p := range r.Players {
		report.Players[id] = p.Round
		report.Totals.add(p.Round)
	}
	return report
}
