package game

// generalRound: fixed question list, one shared countdown per question,
// difficulty-weighted award. Wrong answers cost the configured penalty;
// in debt-tracked variants the penalty defers into debt instead.
type generalRound struct {
	roundBase
	trackDebt bool
}

func newGeneralRound(def RoundDefinition, round int, questions []Question, players map[string]*PlayerData) *generalRound {
	return &generalRound{roundBase: newRoundBase(def, round, questions, players)}
}

func (e *generalRound) HandleAnswer(p *PlayerData, sub AnswerSubmission) (AnswerOutcome, error) {
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
	if sub.Value == nil {
		return AnswerOutcome{}, ErrInvalidAnswer
	}

	correct := EvaluateAnswer(q, *sub.Value)
	var delta int
	if correct {
		delta = e.def.Config.PointsFor(q.Difficulty)
		p.Round.Correct++
	} else {
		delta = -e.def.Config.WrongPenalty
		p.Round.Wrong++
	}
	ApplyDelta(p, delta, DeltaGameplay, e.trackDebt)
	p.putRecord(e.round, q.ID, &AnswerRecord{Value: sub.Value, Correct: correct, Delta: delta})

	return AnswerOutcome{Correct: correct, Delta: delta}, nil
}

func (e *generalRound) Advance() bool {
	if q, ok := e.CurrentQuestion(); ok {
		FinalizeQuestion(e.players, e.round, q.ID, e.def.Config, e.trackDebt)
	}
	e.idx++
	sweepFreezes(e.players, e.idx)
	return e.idx < len(e.questions)
}
