package game

import (
	"sync"
	"time"
)

// Room is one isolated live game: one host, N players, an ordered list
// of round definitions. All mutation happens with mu held, so events
// for one room are processed to completion in order; different rooms
// run independently.
type Room struct {
	Code   string
	HostID string
	Phase  Phase

	Players map[string]*PlayerData
	Rounds  []RoundDefinition

	// CurrentRound is 1-based; 0 before the first round starts.
	CurrentRound int

	engine   RoundEngine
	tiebreak *Tiebreaker

	// Question ids drawn anywhere in this room's history; excluded from
	// every later selection tier.
	usedQuestionIDs map[string]bool
	usedTiebreakIDs map[string]bool

	// Deadline of the open answer window (per-question or per-round
	// depending on the active engine).
	deadline time.Time

	// Per-round extras usage, for end-of-round stats.
	extrasUsed map[ExtraKind]int

	timers *TimerBank

	mu sync.Mutex
}

func newRoom(code string, rounds []RoundDefinition) *Room {
	defs := make([]RoundDefinition, len(rounds))
	for i, d := range rounds {
		defs[i] = d.withDefaults()
	}
	return &Room{
		Code:            code,
		Phase:           PhaseWaiting,
		Players:         make(map[string]*PlayerData),
		Rounds:          defs,
		usedQuestionIDs: make(map[string]bool),
		usedTiebreakIDs: make(map[string]bool),
		extrasUsed:      make(map[ExtraKind]int),
		timers:          NewTimerBank(),
	}
}

// addPlayer registers a player; the first player becomes host.
// Rejoining with a known id reconnects the existing ledger.
func (r *Room) addPlayer(p *PlayerData) (isHost bool) {
	if existing, ok := r.Players[p.ID]; ok {
		existing.Connected = true
		return r.HostID == p.ID
	}
	r.Players[p.ID] = p
	if r.HostID == "" {
		r.HostID = p.ID
		return true
	}
	return false
}

// markDisconnected keeps the ledger so scores survive reconnects; the
// player just stops being a valid extras target.
func (r *Room) markDisconnected(playerID string) {
	if p, ok := r.Players[playerID]; ok {
		p.Connected = false
	}
}

func (r *Room) player(id string) (*PlayerData, error) {
	p, ok := r.Players[id]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	return p, nil
}

func (r *Room) currentDefinition() (RoundDefinition, bool) {
	if r.CurrentRound < 1 || r.CurrentRound > len(r.Rounds) {
		return RoundDefinition{}, false
	}
	return r.Rounds[r.CurrentRound-1], true
}

func (r *Room) onFinalRound() bool {
	return r.CurrentRound >= len(r.Rounds)
}

func (r *Room) markUsed(qs []Question) {
	for _, q := range qs {
		r.usedQuestionIDs[q.ID] = true
	}
}

type PlayerSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Debt      int    `json:"debt"`
	Connected bool   `json:"connected"`
	Frozen    bool   `json:"frozen"`
}

// RoomSnapshot is the full resync payload broadcast on every phase
// transition so reconnecting clients never need event replay.
type RoomSnapshot struct {
	Code          string          `json:"code"`
	HostID        string          `json:"hostId"`
	Phase         Phase           `json:"phase"`
	Round         int             `json:"round"`
	TotalRounds   int             `json:"totalRounds"`
	RoundType     RoundType       `json:"roundType,omitempty"`
	QuestionIndex int             `json:"questionIndex"`
	Deadline      int64           `json:"deadline,omitempty"`
	Players       []PlayerSummary `json:"players"`
}

func (r *Room) snapshotLocked() RoomSnapshot {
	s := RoomSnapshot{
		Code:        r.Code,
		HostID:      r.HostID,
		Phase:       r.Phase,
		Round:       r.CurrentRound,
		TotalRounds: len(r.Rounds),
	}
	if r.engine != nil {
		s.RoundType = r.engine.Type()
		s.QuestionIndex = r.engine.CurrentIndex()
	}
	if r.Phase == PhaseAsking || r.Phase == PhaseTiebreaker {
		if !r.deadline.IsZero() {
			s.Deadline = r.deadline.UnixMilli()
		}
	}
	s.Players = make([]PlayerSummary, 0, len(r.Players))
	for _, p := range r.Players {
		s.Players = append(s.Players, PlayerSummary{
			ID:        p.ID,
			Name:      p.Name,
			Score:     p.Score,
			Debt:      p.Debt,
			Connected: p.Connected,
			Frozen:    p.FrozenForIndex != unfrozen,
		})
	}
	return s
}

// Snapshot is safe to call without holding the room.
func (r *Room) Snapshot() RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// release stops every armed timer; armed callbacks that already fired
// will fail the generation check and do nothing.
func (r *Room) release() {
	r.timers.ReleaseAll()
}
