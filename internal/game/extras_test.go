package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// extrasRoom builds an asking-phase room with a live general round so
// purchases have something to act on.
func extrasRoom(t *testing.T) (*Room, *PlayerData, *PlayerData) {
	t.Helper()

	r := newRoom("ABCD", []RoundDefinition{{Type: RoundGeneralTrivia, Config: triviaConfig()}})
	alice := NewPlayerData("p1", "Alice")
	bob := NewPlayerData("p2", "Bob")
	r.addPlayer(alice)
	r.addPlayer(bob)

	r.CurrentRound = 1
	r.engine = NewRoundEngine(r.Rounds[0], 1, []Question{
		triviaQuestion("q1", DifficultyEasy),
		triviaQuestion("q2", DifficultyEasy),
	}, r.Players)
	r.engine.Begin()
	r.Phase = PhaseAsking

	alice.Score = 10
	bob.Score = 10
	return r, alice, bob
}

func TestUseExtra_RobTransfersAndCharges(t *testing.T) {
	r, alice, bob := extrasRoom(t)
	cfg := ExtrasConfig{}.withDefaults() // rob price 4, amount 3

	res := useExtra(r, "p1", ExtraRequest{Kind: ExtraRob, TargetID: "p2"}, cfg)
	require.True(t, res.Success)
	require.Equal(t, 3, res.Stolen)
	require.Equal(t, 10+3-4, alice.Score)
	require.Equal(t, 7, bob.Score)
	require.Equal(t, 1, alice.UsedExtrasRound[ExtraRob])
	require.Equal(t, 1, r.extrasUsed[ExtraRob])
}

func TestUseExtra_PerRoundLimit(t *testing.T) {
	r, _, _ := extrasRoom(t)
	cfg := ExtrasConfig{}.withDefaults()

	res := useExtra(r, "p1", ExtraRequest{Kind: ExtraRob, TargetID: "p2"}, cfg)
	require.True(t, res.Success)

	res = useExtra(r, "p1", ExtraRequest{Kind: ExtraRob, TargetID: "p2"}, cfg)
	require.False(t, res.Success)
	require.Equal(t, ErrExtraLimitReached.Error(), res.Error)
}

func TestUseExtra_InsufficientScoreAppliesNothing(t *testing.T) {
	r, alice, bob := extrasRoom(t)
	alice.Score = 1
	cfg := ExtrasConfig{}.withDefaults()

	res := useExtra(r, "p1", ExtraRequest{Kind: ExtraRob, TargetID: "p2"}, cfg)
	require.False(t, res.Success)
	require.Equal(t, ErrInsufficientScore.Error(), res.Error)
	require.Equal(t, 1, alice.Score)
	require.Equal(t, 10, bob.Score)
	require.Zero(t, alice.UsedExtrasRound[ExtraRob])
}

func TestUseExtra_FailedEffectIsNotCharged(t *testing.T) {
	r, alice, _ := extrasRoom(t)
	cfg := ExtrasConfig{}.withDefaults()

	// Nothing to restore: no debt, no negative balance.
	res := useExtra(r, "p1", ExtraRequest{Kind: ExtraRestore}, cfg)
	require.False(t, res.Success)
	require.Equal(t, ErrNothingToRestore.Error(), res.Error)
	require.Equal(t, 10, alice.Score, "price is only deducted on success")

	// Self-freeze is invalid and must not charge either.
	res = useExtra(r, "p1", ExtraRequest{Kind: ExtraFreeze, TargetID: "p1"}, cfg)
	require.False(t, res.Success)
	require.Equal(t, 10, alice.Score)
}

func TestUseExtra_RestorePaysDebt(t *testing.T) {
	r, alice, _ := extrasRoom(t)
	alice.Debt = 5
	cfg := ExtrasConfig{}.withDefaults() // restore price 2, amount 3

	res := useExtra(r, "p1", ExtraRequest{Kind: ExtraRestore}, cfg)
	require.True(t, res.Success)
	require.Equal(t, 3, res.Restored)
	require.Equal(t, 2, alice.Debt)
	require.Equal(t, 8, alice.Score, "only the price moves the score")
}

func TestUseExtra_HintKeepsCorrectOption(t *testing.T) {
	r, _, _ := extrasRoom(t)
	cfg := ExtrasConfig{}.withDefaults()

	res := useExtra(r, "p1", ExtraRequest{Kind: ExtraHint}, cfg)
	require.True(t, res.Success)
	require.Len(t, res.HintOptions, 2)
	require.Contains(t, res.HintOptions, "Paris")
}

func TestUseExtra_FreezeNotifiesState(t *testing.T) {
	r, _, bob := extrasRoom(t)
	cfg := ExtrasConfig{}.withDefaults()

	res := useExtra(r, "p1", ExtraRequest{Kind: ExtraFreeze, TargetID: "p2"}, cfg)
	require.True(t, res.Success)
	require.Equal(t, 1, bob.FrozenForIndex)
	require.Equal(t, "p1", bob.FrozenBy)
}

func TestUseExtra_RejectedOutsideAsking(t *testing.T) {
	r, _, _ := extrasRoom(t)
	r.Phase = PhaseReviewing
	cfg := ExtrasConfig{}.withDefaults()

	res := useExtra(r, "p1", ExtraRequest{Kind: ExtraHint}, cfg)
	require.False(t, res.Success)
	require.Equal(t, ErrBadPhase.Error(), res.Error)
}

func TestUseExtra_UnknownKind(t *testing.T) {
	r, _, _ := extrasRoom(t)
	cfg := ExtrasConfig{}.withDefaults()

	res := useExtra(r, "p1", ExtraRequest{Kind: "teleport"}, cfg)
	require.False(t, res.Success)
	require.Equal(t, ErrUnknownExtra.Error(), res.Error)
}
