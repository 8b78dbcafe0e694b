package game

// Freeze state transitions. A freeze marks exactly one future question
// index for its target; the per-advance sweep clears it monotonically
// once that index has passed. Freezes never re-apply retroactively.

// setFreeze validates and applies a freeze from actor onto target for
// the question after currentIndex. remaining counts the current
// question plus everything after it.
func setFreeze(actor, target *PlayerData, currentIndex, remaining int) error {
	if actor.ID == target.ID {
		return ErrSelfTarget
	}
	if target.FrozenForIndex != unfrozen {
		return ErrTargetFrozen
	}
	if !target.Connected {
		return ErrTargetDisconnected
	}
	if remaining < 2 {
		return ErrTooFewQuestionsLeft
	}
	target.FrozenForIndex = currentIndex + 1
	target.FrozenBy = actor.ID
	return nil
}

// frozenFor reports whether the player may not answer question index.
func frozenFor(p *PlayerData, index int) bool {
	return p.FrozenForIndex != unfrozen && p.FrozenForIndex == index
}

// sweepFreezes clears any freeze whose marked index is already behind
// currentIndex. Run on every question advance and at round end.
func sweepFreezes(players map[string]*PlayerData, currentIndex int) {
	for _, p := range players {
		if p.FrozenForIndex != unfrozen && p.FrozenForIndex < currentIndex {
			p.FrozenForIndex = unfrozen
			p.FrozenBy = ""
		}
	}
}

// clearFreezes drops every freeze unconditionally (round teardown).
func clearFreezes(players map[string]*PlayerData) {
	for _, p := range players {
		p.FrozenForIndex = unfrozen
		p.FrozenBy = ""
	}
}
