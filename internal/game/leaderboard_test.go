package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func scoredPlayer(id, name string, score int) *PlayerData {
	p := NewPlayerData(id, name)
	p.Score = score
	return p
}

func TestBuildLeaderboard_OrderingAndPlaces(t *testing.T) {
	players := map[string]*PlayerData{
		"p1": scoredPlayer("p1", "Bob", 5),
		"p2": scoredPlayer("p2", "Alice", 5),
		"p3": scoredPlayer("p3", "Cara", 3),
		"p4": scoredPlayer("p4", "Dan", 8),
	}

	entries := buildLeaderboard(players)
	require.Len(t, entries, 4)

	require.Equal(t, "Dan", entries[0].Name)
	require.Equal(t, 1, entries[0].Place)

	// Tied scores share a place, ordered by name then id.
	require.Equal(t, "Alice", entries[1].Name)
	require.Equal(t, 2, entries[1].Place)
	require.Equal(t, "Bob", entries[2].Name)
	require.Equal(t, 2, entries[2].Place)

	require.Equal(t, "Cara", entries[3].Name)
	require.Equal(t, 4, entries[3].Place, "place skips past a shared rank")
}

func TestBuildLeaderboard_NameTieFallsBackToID(t *testing.T) {
	players := map[string]*PlayerData{
		"b": scoredPlayer("b", "Sam", 2),
		"a": scoredPlayer("a", "Sam", 2),
	}

	entries := buildLeaderboard(players)
	require.Equal(t, "a", entries[0].PlayerID)
	require.Equal(t, "b", entries[1].PlayerID)
}

func TestTiedAtPrizeBoundary(t *testing.T) {
	entries := []LeaderboardEntry{
		{Place: 1, PlayerID: "p1", Score: 9},
		{Place: 2, PlayerID: "p2", Score: 7},
		{Place: 2, PlayerID: "p3", Score: 7},
		{Place: 4, PlayerID: "p4", Score: 5},
	}

	tied := tiedAtPrizeBoundary(entries, 3)
	require.ElementsMatch(t, []string{"p2", "p3"}, tied)
}

func TestTiedAtPrizeBoundary_TieOutsidePrizes(t *testing.T) {
	entries := []LeaderboardEntry{
		{Place: 1, PlayerID: "p1", Score: 9},
		{Place: 2, PlayerID: "p2", Score: 8},
		{Place: 3, PlayerID: "p3", Score: 7},
		{Place: 4, PlayerID: "p4", Score: 5},
		{Place: 4, PlayerID: "p5", Score: 5},
	}

	require.Nil(t, tiedAtPrizeBoundary(entries, 3))
	require.Nil(t, tiedAtPrizeBoundary(entries, 0))
}
