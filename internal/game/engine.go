package game

import "time"

// AnswerSubmission is the one well-typed inbound answer message. Which
// fields matter depends on the active round type; everything else is
// ignored. A nil Value in the speed round is a voluntary skip.
type AnswerSubmission struct {
	QuestionID string           `json:"questionId"`
	Value      *string          `json:"value,omitempty"`
	Click      *ClickSubmission `json:"click,omitempty"`
	Order      []string         `json:"order,omitempty"`
}

type ClickSubmission struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type AnswerOutcome struct {
	Correct bool `json:"correct"`
	Skipped bool `json:"skipped,omitempty"`
	Delta   int  `json:"delta"`

	// Hidden object.
	ZoneID   string `json:"zoneId,omitempty"`
	FoundAll bool   `json:"foundAll,omitempty"`

	// Speed round.
	QueueFinished bool      `json:"queueFinished,omitempty"`
	NextQuestion  *Question `json:"nextQuestion,omitempty"`
}

// RoundEngine is the shared lifecycle contract every round variant
// implements. The concrete engine is resolved once at round init and
// stored on the room; nothing re-dispatches on the round type string
// per action.
type RoundEngine interface {
	Type() RoundType
	Definition() RoundDefinition

	// Begin resets per-round player tracking and any per-player state.
	Begin()

	CurrentIndex() int
	Remaining() int
	CurrentQuestion() (Question, bool)

	// PlayerQuestion returns the next question on a player's private
	// queue; ok is false for shared-question modes.
	PlayerQuestion(playerID string) (Question, bool)

	// SetDeadline tells the engine when the open answer window closes
	// (used for time-remaining bonuses).
	SetDeadline(t time.Time)

	HandleAnswer(p *PlayerData, sub AnswerSubmission) (AnswerOutcome, error)

	// Freeze applies the freeze extra from actor onto target for the
	// immediate next question.
	Freeze(actor, target *PlayerData) error

	// Advance finalizes the open question and moves to the next one,
	// reporting whether any questions remain.
	Advance() (more bool)

	NextReviewItem() (ReviewItem, bool)
	ReviewComplete() bool
}

// NewRoundEngine resolves a round definition into its engine.
func NewRoundEngine(def RoundDefinition, round int, questions []Question, players map[string]*PlayerData) RoundEngine {
	switch def.Type {
	case RoundWipeout:
		return newWipeoutRound(def, round, questions, players)
	case RoundSpeed:
		return newSpeedRound(def, round, questions, players)
	case RoundHiddenObject:
		return newHiddenObjectRound(def, round, questions, players)
	case RoundOrderImage:
		return newOrderImageRound(def, round, questions, players)
	default:
		return newGeneralRound(def, round, questions, players)
	}
}

// roundBase carries the state every variant shares: the drawn question
// list, the shared cursor, the review cursor and the player roster.
type roundBase struct {
	def       RoundDefinition
	round     int
	questions []Question
	idx       int
	reviewIdx int
	players   map[string]*PlayerData
	deadline  time.Time

	// reviewAnswer renders the correct answer for review payloads.
	reviewAnswer func(Question) string
}

func newRoundBase(def RoundDefinition, round int, questions []Question, players map[string]*PlayerData) roundBase {
	return roundBase{
		def:          def,
		round:        round,
		questions:    questions,
		players:      players,
		reviewAnswer: func(q Question) string { return q.Answer },
	}
}

func (b *roundBase) Type() RoundType             { return b.def.Type }
func (b *roundBase) Definition() RoundDefinition { return b.def }
func (b *roundBase) CurrentIndex() int           { return b.idx }
func (b *roundBase) Remaining() int              { return len(b.questions) - b.idx }
func (b *roundBase) SetDeadline(t time.Time)     { b.deadline = t }

func (b *roundBase) Begin() {
	clearFreezes(b.players)
	for _, p := range b.players {
		InitRoundTracking(p)
	}
}

func (b *roundBase) CurrentQuestion() (Question, bool) {
	if b.idx < 0 || b.idx >= len(b.questions) {
		return Question{}, false
	}
	return b.questions[b.idx], true
}

func (b *roundBase) PlayerQuestion(string) (Question, bool) {
	return Question{}, false
}

func (b *roundBase) Freeze(actor, target *PlayerData) error {
	return setFreeze(actor, target, b.idx, b.Remaining())
}

func (b *roundBase) NextReviewItem() (ReviewItem, bool) {
	if b.reviewIdx >= len(b.questions) {
		return ReviewItem{}, false
	}
	q := b.questions[b.reviewIdx]
	item := buildReviewItem(b.players, b.round, b.reviewIdx, q, b.reviewAnswer(q))
	b.reviewIdx++
	return item, true
}

func (b *roundBase) ReviewComplete() bool {
	return b.reviewIdx >= len(b.questions)
}

// secondsLeft is the whole seconds remaining before the armed deadline.
func (b *roundBase) secondsLeft(now time.Time) int {
	if b.deadline.IsZero() || now.After(b.deadline) {
		return 0
	}
	return int(b.deadline.Sub(now).Seconds())
}
