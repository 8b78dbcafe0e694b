package game

import "sort"

// Leaderboard is a pure projection over the score ledger. Ordering is
// score descending with a deterministic secondary key: name ascending,
// then player id ascending. Tiebreaker bonuses are already folded into
// Score by the time this runs, and who won a tiebreak is tracked on the
// tiebreaker state, not inferred from ordering.

type LeaderboardEntry struct {
	Place    int    `json:"place"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Debt     int    `json:"debt,omitempty"`
}

type LeaderboardPayload struct {
	Code        string             `json:"code"`
	Round       int                `json:"round"`
	FinalRound  bool               `json:"finalRound"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

func buildLeaderboard(players map[string]*PlayerData) []LeaderboardEntry {
	rows := make([]*PlayerData, 0, len(players))
	for _, p := range players {
		rows = append(rows, p)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].ID < rows[j].ID
	})

	entries := make([]LeaderboardEntry, 0, len(rows))
	place := 0
	prevScore := 0
	for i, p := range rows {
		if i == 0 || p.Score != prevScore {
			place = i + 1
			prevScore = p.Score
		}
		entries = append(entries, LeaderboardEntry{
			Place:    place,
			PlayerID: p.ID,
			Name:     p.Name,
			Score:    p.Score,
			Debt:     p.Debt,
		})
	}
	return entries
}

// tiedAtPrizeBoundary returns the ids sharing a score at a rank inside
// the prize positions when that shared score makes the prize split
// ambiguous (two or more players on the same awarded rank).
func tiedAtPrizeBoundary(entries []LeaderboardEntry, prizeCount int) []string {
	if prizeCount <= 0 {
		return nil
	}
	byScore := make(map[int][]string)
	for _, e := range entries {
		byScore[e.Score] = append(byScore[e.Score], e.PlayerID)
	}
	for _, e := range entries {
		if e.Place > prizeCount {
			break
		}
		if group := byScore[e.Score]; len(group) >= 2 {
			return group
		}
	}
	return nil
}
