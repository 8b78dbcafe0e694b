package game

import (
	"sync"
	"time"
)

// TimerBank owns every scheduled callback for one room. Arming a timer
// for a purpose cancels any previous timer armed for the same purpose,
// and bumps the generation so stale callbacks become no-ops.
//
// Callbacks receive the generation they were armed with; they must
// re-fetch the room by code and call Valid under the room lock before
// touching any state. Callbacks never hold a captured room snapshot.
type TimerBank struct {
	mu     sync.Mutex
	gen    int64
	timers map[string]*time.Timer
}

const (
	timerQuestion = "question"
	timerRound    = "round"
	timerTiebreak = "tiebreak"
)

func NewTimerBank() *TimerBank {
	return &TimerBank{timers: make(map[string]*time.Timer)}
}

func (b *TimerBank) Arm(purpose string, d time.Duration, fn func(gen int64)) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if t, ok := b.timers[purpose]; ok {
		t.Stop()
	}
	b.gen++
	gen := b.gen
	b.timers[purpose] = time.AfterFunc(d, func() { fn(gen) })
	return gen
}

func (b *TimerBank) Cancel(purpose string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if t, ok := b.timers[purpose]; ok {
		t.Stop()
		delete(b.timers, purpose)
	}
	b.gen++
}

// Valid reports whether gen is still the latest armed generation.
func (b *TimerBank) Valid(gen int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return gen == b.gen
}

func (b *TimerBank) ReleaseAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for purpose, t := range b.timers {
		t.Stop()
		delete(b.timers, purpose)
	}
	b.gen++
}
