package game

import "strings"

// orderImageRound: players submit a permutation of the displayed items;
// it is checked against the canonical order for an all-or-nothing
// difficulty-weighted award.
type orderImageRound struct {
	roundBase
}

func newOrderImageRound(def RoundDefinition, round int, questions []Question, players map[string]*PlayerData) *orderImageRound {
	e := &orderImageRound{roundBase: newRoundBase(def, round, questions, players)}
	e.reviewAnswer = func(q Question) string { return strings.Join(q.CorrectOrder, " > ") }
	return e
}

func (e *orderImageRound) HandleAnswer(p *PlayerData, sub AnswerSubmission) (AnswerOutcome, error) {
	q, ok := e.CurrentQuestion()
	if !ok {
		return AnswerOutcome{}, ErrBadPhase
	}
	if sub.QuestionID != q.ID {
		return AnswerOutcome{}, ErrStaleQuestion
	}
	if frozenFor(p, e.idx) {
		return AnswerOutcome{}, ErrPlayerFrozen
	}
	if rec, exists := p.record(e.round, q.ID); exists {
		return AnswerOutcome{Correct: rec.Correct, Delta: rec.Delta}, ErrAlreadyAnswered
	}
	if len(sub.Order) == 0 {
		return AnswerOutcome{}, ErrInvalidAnswer
	}

	correct := orderMatches(sub.Order, q.CorrectOrder)
	var delta int
	if correct {
		delta = e.def.Config.PointsFor(q.Difficulty)
		p.Round.Correct++
	} else {
		delta = -e.def.Config.WrongPenalty
		p.Round.Wrong++
	}
	ApplyDelta(p, delta, DeltaGameplay, false)

	submitted := strings.Join(sub.Order, " > ")
	p.putRecord(e.round, q.ID, &AnswerRecord{Value: &submitted, Correct: correct, Delta: delta})

	return AnswerOutcome{Correct: correct, Delta: delta}, nil
}

func (e *orderImageRound) Advance() bool {
	if q, ok := e.CurrentQuestion(); ok {
		FinalizeQuestion(e.players, e.round, q.ID, e.def.Config, false)
	}
	e.idx++
	sweepFreezes(e.players, e.idx)
	return e.idx < len(e.questions)
}

func orderMatches(submitted, canonical []string) bool {
	if len(submitted) != len(canonical) {
		return false
	}
	for i := range submitted {
		if !strings.EqualFold(strings.TrimSpace(submitted[i]), strings.TrimSpace(canonical[i])) {
			return false
		}
	}
	return true
}
