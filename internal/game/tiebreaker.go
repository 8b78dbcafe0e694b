package game

import "math"

// Tiebreaker resolves tied scores at a prize boundary with numeric
// closest-guess questions. Each iteration draws a never-reused question,
// scores by absolute distance to the target and carries forward only
// the minimum-distance participants; a single survivor resolves it.
type Tiebreaker struct {
	Participants []string
	Question     *Question
	Answers      map[string]float64
	Winners      []string
	Awarded      bool
}

func NewTiebreaker(participants []string) *Tiebreaker {
	return &Tiebreaker{
		Participants: participants,
		Answers:      make(map[string]float64),
	}
}

func (tb *Tiebreaker) SetQuestion(q Question) {
	tb.Question = &q
	tb.Answers = make(map[string]float64)
}

func (tb *Tiebreaker) isParticipant(playerID string) bool {
	for _, id := range tb.Participants {
		if id == playerID {
			return true
		}
	}
	return false
}

func (tb *Tiebreaker) SubmitGuess(playerID string, guess float64) error {
	if tb.Question == nil {
		return ErrNoActiveTiebreak
	}
	if !tb.isParticipant(playerID) {
		return ErrNotParticipant
	}
	if _, dup := tb.Answers[playerID]; dup {
		return ErrAlreadyAnswered
	}
	tb.Answers[playerID] = guess
	return nil
}

func (tb *Tiebreaker) AllAnswered() bool {
	return tb.Question != nil && len(tb.Answers) == len(tb.Participants)
}

// TiebreakDistance is one participant's scored guess for result payloads.
type TiebreakDistance struct {
	PlayerID string  `json:"playerId"`
	Guess    float64 `json:"guess"`
	Answered bool    `json:"answered"`
	Distance float64 `json:"distance"`
}

// Resolve carries forward the minimum-distance participants. Silence
// scores as infinite distance, so anyone who answered beats anyone who
// did not; if nobody answered, everyone survives and a new question is
// drawn. Symmetric distances (one guess below the target, one the same
// amount above) break toward the overestimate; only identical guesses
// tie and force a redraw.
func (tb *Tiebreaker) Resolve() (survivors []string, results []TiebreakDistance) {
	if tb.Question == nil {
		return nil, nil
	}
	target := tb.Question.Target

	best := math.Inf(1)
	results = make([]TiebreakDistance, 0, len(tb.Participants))
	for _, id := range tb.Participants {
		d := TiebreakDistance{PlayerID: id, Distance: math.Inf(1)}
		if guess, ok := tb.Answers[id]; ok {
			d.Guess = guess
			d.Answered = true
			d.Distance = math.Abs(guess - target)
		}
		if d.Distance < best {
			best = d.Distance
		}
		results = append(results, d)
	}

	if math.IsInf(best, 1) {
		return append([]string(nil), tb.Participants...), results
	}

	var above, below []string
	for _, d := range results {
		if d.Distance != best {
			continue
		}
		if d.Guess > target {
			above = append(above, d.PlayerID)
		} else {
			below = append(below, d.PlayerID)
		}
	}
	if len(above) > 0 && len(below) > 0 {
		return above, results
	}
	return append(above, below...), results
}

// CarryForward restricts the next iteration to the surviving ids.
func (tb *Tiebreaker) CarryForward(survivors []string) {
	tb.Participants = survivors
	tb.Question = nil
	tb.Answers = make(map[string]float64)
}
