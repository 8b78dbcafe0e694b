package game

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRoomManager_CreateUniqueCodes(t *testing.T) {
	rm := NewRoomManager()

	codes := make(map[string]bool)
	for i := 0; i < 100; i++ {
		room := rm.CreateRoom(nil)
		require.Len(t, room.Code, 4)
		require.False(t, codes[room.Code], "duplicate room code %s", room.Code)
		codes[room.Code] = true
	}
}

func TestRoomManager_GetRoomCaseInsensitive(t *testing.T) {
	rm := NewRoomManager()
	room := rm.CreateRoom(nil)

	got, ok := rm.GetRoom(room.Code)
	require.True(t, ok)
	require.Same(t, room, got)

	got, ok = rm.GetRoom(strings.ToLower(room.Code))
	require.True(t, ok)
	require.Same(t, room, got)

	_, ok = rm.GetRoom("ZZZZZZ")
	require.False(t, ok)
}

func TestRoomManager_DeleteRoom(t *testing.T) {
	rm := NewRoomManager()
	room := rm.CreateRoom(nil)

	rm.DeleteRoom(room.Code)
	_, ok := rm.GetRoom(room.Code)
	require.False(t, ok)

	// Deleting twice is a no-op.
	rm.DeleteRoom(room.Code)
}

func TestRoom_AddPlayerHostAndReconnect(t *testing.T) {
	r := newRoom("ABCD", nil)

	require.True(t, r.addPlayer(NewPlayerData("p1", "Alice")), "first player hosts")
	require.False(t, r.addPlayer(NewPlayerData("p2", "Bob")))

	r.markDisconnected("p2")
	p, err := r.player("p2")
	require.NoError(t, err)
	require.False(t, p.Connected)

	// Rejoining with a known id reconnects the same ledger.
	p.Score = 7
	require.False(t, r.addPlayer(NewPlayerData("p2", "Bob")))
	p, _ = r.player("p2")
	require.True(t, p.Connected)
	require.Equal(t, 7, p.Score)

	_, err = r.player("p9")
	require.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestRoom_Snapshot(t *testing.T) {
	r := newRoom("ABCD", []RoundDefinition{{Type: RoundGeneralTrivia}})
	r.addPlayer(NewPlayerData("p1", "Alice"))
	r.Phase = PhaseAsking
	r.deadline = time.Now().Add(10 * time.Second)

	snap := r.Snapshot()
	require.Equal(t, "ABCD", snap.Code)
	require.Equal(t, "p1", snap.HostID)
	require.Equal(t, PhaseAsking, snap.Phase)
	require.Equal(t, 1, snap.TotalRounds)
	require.NotZero(t, snap.Deadline)
	require.Len(t, snap.Players, 1)
}

func TestTimerBank_GenerationInvalidation(t *testing.T) {
	b := NewTimerBank()

	fired := make(chan int64, 2)
	gen1 := b.Arm(timerQuestion, time.Hour, func(gen int64) { fired <- gen })
	require.True(t, b.Valid(gen1))

	// Re-arming the same purpose supersedes the earlier timer.
	gen2 := b.Arm(timerQuestion, time.Hour, func(gen int64) { fired <- gen })
	require.False(t, b.Valid(gen1))
	require.True(t, b.Valid(gen2))

	b.Cancel(timerQuestion)
	require.False(t, b.Valid(gen2))

	gen3 := b.Arm(timerRound, time.Hour, func(gen int64) { fired <- gen })
	b.ReleaseAll()
	require.False(t, b.Valid(gen3))
	require.Empty(t, fired)
}

func TestTimerBank_CallbackCarriesItsGeneration(t *testing.T) {
	b := NewTimerBank()

	fired := make(chan int64, 1)
	gen := b.Arm(timerQuestion, time.Millisecond, func(g int64) { fired <- g })

	select {
	case got := <-fired:
		require.Equal(t, gen, got)
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}
