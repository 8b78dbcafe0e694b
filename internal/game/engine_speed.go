package game

import "math/rand"

// speedRound: one global round-level countdown; every player walks an
// independent cursor through a private shuffle of the two-option pool,
// advancing immediately per answer. A nil value is a voluntary skip,
// distinct from attempted-but-wrong.
type speedRound struct {
	roundBase
	queues  map[string][]Question
	cursors map[string]int
}

func newSpeedRound(def RoundDefinition, round int, questions []Question, players map[string]*PlayerData) *speedRound {
	return &speedRound{
		roundBase: newRoundBase(def, round, questions, players),
		queues:    make(map[string][]Question),
		cursors:   make(map[string]int),
	}
}

func (e *speedRound) Begin() {
	e.roundBase.Begin()
	for id := range e.players {
		queue := make([]Question, len(e.questions))
		copy(queue, e.questions)
		rand.Shuffle(len(queue), func(i, j int) { queue[i], queue[j] = queue[j], queue[i] })
		e.queues[id] = queue
		e.cursors[id] = 0
	}
}

func (e *speedRound) PlayerQuestion(playerID string) (Question, bool) {
	queue, ok := e.queues[playerID]
	if !ok {
		return Question{}, false
	}
	cursor := e.cursors[playerID]
	if cursor >= len(queue) {
		return Question{}, false
	}
	return queue[cursor], true
}

func (e *speedRound) HandleAnswer(p *PlayerData, sub AnswerSubmission) (AnswerOutcome, error) {
	queue, ok := e.queues[p.ID]
	if !ok {
		return AnswerOutcome{}, ErrUnknownPlayer
	}
	cursor := e.cursors[p.ID]
	if cursor >= len(queue) {
		return AnswerOutcome{QueueFinished: true}, ErrStaleQuestion
	}
	q := queue[cursor]
	if sub.QuestionID != q.ID {
		return AnswerOutcome{}, ErrStaleQuestion
	}
	if frozenFor(p, cursor) {
		// The queue is self-paced, so a frozen question is consumed as
		// a forced skip; otherwise the player could never move past it.
		// Recorded exactly like a voluntary skip (nil value, no debt).
		p.putRecord(e.round, q.ID, &AnswerRecord{Finalized: true})
		p.Round.Skipped++
		e.cursors[p.ID] = cursor + 1
		sweepFreezesCursor(p, cursor+1)
		outcome := AnswerOutcome{Skipped: true}
		if next, more := e.PlayerQuestion(p.ID); more {
			outcome.NextQuestion = &next
		} else {
			outcome.QueueFinished = true
		}
		return outcome, ErrPlayerFrozen
	}
	if rec, exists := p.record(e.round, q.ID); exists {
		return AnswerOutcome{Correct: rec.Correct, Delta: rec.Delta}, ErrAlreadyAnswered
	}

	outcome := AnswerOutcome{}
	rec := &AnswerRecord{Value: sub.Value, Finalized: true}
	switch {
	case sub.Value == nil:
		outcome.Skipped = true
		p.Round.Skipped++
	case EvaluateAnswer(q, *sub.Value):
		outcome.Correct = true
		rec.Correct = true
		rec.Delta = e.def.Config.PointsFor(q.Difficulty)
		p.Round.Correct++
	default:
		rec.Delta = -e.def.Config.WrongPenalty
		p.Round.Wrong++
	}
	outcome.Delta = rec.Delta
	if rec.Delta != 0 {
		ApplyDelta(p, rec.Delta, DeltaGameplay, false)
	}
	p.putRecord(e.round, q.ID, rec)

	e.cursors[p.ID] = cursor + 1
	sweepFreezesCursor(p, cursor+1)
	if next, more := e.PlayerQuestion(p.ID); more {
		outcome.NextQuestion = &next
	} else {
		outcome.QueueFinished = true
	}
	return outcome, nil
}

func (e *speedRound) Freeze(actor, target *PlayerData) error {
	queue, ok := e.queues[target.ID]
	if !ok {
		return ErrUnknownPlayer
	}
	cursor := e.cursors[target.ID]
	return setFreeze(actor, target, cursor, len(queue)-cursor)
}

// Advance ends the round when the global countdown expires. Unreached
// queue items carry no penalty: the pace was the player's own.
func (e *speedRound) Advance() bool {
	clearFreezes(e.players)
	e.idx = len(e.questions)
	return false
}

// sweepFreezesCursor clears one player's freeze once their own cursor
// moves past the marked index.
func sweepFreezesCursor(p *PlayerData, cursor int) {
	if p.FrozenForIndex != unfrozen && p.FrozenForIndex < cursor {
		p.FrozenForIndex = unfrozen
		p.FrozenBy = ""
	}
}
