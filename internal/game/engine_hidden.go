package game

import (
	"fmt"
	"strings"
	"time"
)

// hiddenObjectRound: each question is a scene of normalized bounding
// boxes. Clicks are validated against unfound zones; a hit awards the
// zone's difficulty-weighted points, finding the last zone adds a
// time-remaining bonus. Misses only count toward stats.
type hiddenObjectRound struct {
	roundBase
	found map[string]map[string]bool // playerID -> zoneID -> found
	now   func() time.Time
}

func newHiddenObjectRound(def RoundDefinition, round int, questions []Question, players map[string]*PlayerData) *hiddenObjectRound {
	e := &hiddenObjectRound{
		roundBase: newRoundBase(def, round, questions, players),
		found:     make(map[string]map[string]bool),
		now:       time.Now,
	}
	e.reviewAnswer = func(q Question) string {
		labels := make([]string, 0, len(q.Zones))
		for _, z := range q.Zones {
			labels = append(labels, z.Label)
		}
		return strings.Join(labels, ", ")
	}
	return e
}

func (e *hiddenObjectRound) HandleAnswer(p *PlayerData, sub AnswerSubmission) (AnswerOutcome, error) {
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
	if sub.Click == nil {
		return AnswerOutcome{}, ErrInvalidAnswer
	}

	sceneKey := e.sceneKey(p.ID, q.ID)
	if e.found[sceneKey] == nil {
		e.found[sceneKey] = make(map[string]bool)
	}
	playerFound := e.found[sceneKey]

	rec, exists := p.record(e.round, q.ID)
	if !exists {
		rec = &AnswerRecord{}
		p.putRecord(e.round, q.ID, rec)
	}
	if rec.Finalized {
		return AnswerOutcome{}, ErrAnswerWindowClosed
	}

	for _, z := range q.Zones {
		if !z.Contains(sub.Click.X, sub.Click.Y) {
			continue
		}
		if playerFound[z.ID] {
			// Repeated hit on a found zone is a no-op.
			return AnswerOutcome{Correct: true, ZoneID: z.ID}, nil
		}
		playerFound[z.ID] = true
		p.Round.ItemsFound++

		delta := e.def.Config.PointsFor(z.Difficulty)
		outcome := AnswerOutcome{Correct: true, ZoneID: z.ID, Delta: delta}

		if len(playerFound) == len(q.Zones) {
			bonus := e.secondsLeft(e.now()) * e.def.Config.TimeBonusPerSecond
			delta += bonus
			outcome.Delta = delta
			outcome.FoundAll = true
			rec.Correct = true
		}
		ApplyDelta(p, delta, DeltaGameplay, false)
		rec.Delta += delta
		return outcome, nil
	}

	p.Round.WrongClicks++
	return AnswerOutcome{}, nil
}

func (e *hiddenObjectRound) Advance() bool {
	if q, ok := e.CurrentQuestion(); ok {
		FinalizeQuestion(e.players, e.round, q.ID, e.def.Config, false)
	}
	e.idx++
	sweepFreezes(e.players, e.idx)
	return e.idx < len(e.questions)
}

func (e *hiddenObjectRound) sceneKey(playerID, questionID string) string {
	return fmt.Sprintf("%s/%s", playerID, questionID)
}
