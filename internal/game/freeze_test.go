package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetFreeze_MarksNextQuestionOnly(t *testing.T) {
	actor := NewPlayerData("p1", "Alice")
	target := NewPlayerData("p2", "Bob")

	require.NoError(t, setFreeze(actor, target, 3, 5))
	require.Equal(t, 4, target.FrozenForIndex)
	require.Equal(t, "p1", target.FrozenBy)

	require.False(t, frozenFor(target, 3), "current question unaffected")
	require.True(t, frozenFor(target, 4))
	require.False(t, frozenFor(target, 5), "freeze never reaches past its mark")
}

func TestSetFreeze_Validation(t *testing.T) {
	actor := NewPlayerData("p1", "Alice")
	target := NewPlayerData("p2", "Bob")

	require.ErrorIs(t, setFreeze(actor, actor, 0, 5), ErrSelfTarget)

	require.ErrorIs(t, setFreeze(actor, target, 0, 1), ErrTooFewQuestionsLeft)

	target.Connected = false
	require.ErrorIs(t, setFreeze(actor, target, 0, 5), ErrTargetDisconnected)
	target.Connected = true

	require.NoError(t, setFreeze(actor, target, 0, 5))
	require.ErrorIs(t, setFreeze(actor, target, 0, 5), ErrTargetFrozen)
}

func TestSweepFreezes_ClearsOnlyPassedMarks(t *testing.T) {
	frozen := NewPlayerData("p1", "Alice")
	frozen.FrozenForIndex = 2
	pending := NewPlayerData("p2", "Bob")
	pending.FrozenForIndex = 3
	players := map[string]*PlayerData{"p1": frozen, "p2": pending}

	sweepFreezes(players, 3)

	require.Equal(t, unfrozen, frozen.FrozenForIndex)
	require.Equal(t, 3, pending.FrozenForIndex, "freeze for the now-current question stays")

	sweepFreezes(players, 4)
	require.Equal(t, unfrozen, pending.FrozenForIndex)
}

func TestClearFreezes(t *testing.T) {
	p := NewPlayerData("p1", "Alice")
	p.FrozenForIndex = 1
	p.FrozenBy = "p2"

	clearFreezes(map[string]*PlayerData{"p1": p})
	require.Equal(t, unfrozen, p.FrozenForIndex)
	require.Empty(t, p.FrozenBy)
}
