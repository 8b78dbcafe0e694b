package game

import (
	"time"
)

type Phase string

const (
	PhaseWaiting     Phase = "waiting"
	PhaseAsking      Phase = "asking"
	PhaseReviewing   Phase = "reviewing"
	PhaseLeaderboard Phase = "leaderboard"
	PhaseTiebreaker  Phase = "tiebreaker"
	PhaseEnded       Phase = "ended"
)

type RoundType string

const (
	RoundGeneralTrivia RoundType = "general_trivia"
	RoundWipeout       RoundType = "wipeout"
	RoundSpeed         RoundType = "speed_round"
	RoundHiddenObject  RoundType = "hidden_object"
	RoundOrderImage    RoundType = "order_image"
	RoundTiebreaker    RoundType = "tiebreaker"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type ExtraKind string

const (
	ExtraHint    ExtraKind = "hint"
	ExtraFreeze  ExtraKind = "freeze"
	ExtraRob     ExtraKind = "rob"
	ExtraRestore ExtraKind = "restore"
)

// Zone is a normalized bounding box inside a hidden-object scene.
// Coordinates are fractions of the scene dimensions in [0,1].
type Zone struct {
	ID         string     `json:"id"`
	Label      string     `json:"label"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	W          float64    `json:"w"`
	H          float64    `json:"h"`
	Difficulty Difficulty `json:"difficulty"`
}

func (z Zone) Contains(x, y float64) bool {
	return x >= z.X && x <= z.X+z.W && y >= z.Y && y <= z.Y+z.H
}

// Question is immutable once drawn into a round. Answer, CorrectOrder and
// Target are never serialized to players while the question is live.
type Question struct {
	ID         string     `json:"id"`
	Type       RoundType  `json:"type"`
	Text       string     `json:"text"`
	MediaURL   string     `json:"mediaUrl,omitempty"`
	Options    []string   `json:"options,omitempty"`
	Answer     string     `json:"-"`
	Category   string     `json:"category,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`

	// Hidden-object scenes.
	Zones []Zone `json:"zones,omitempty"`

	// Order-image canonical sequence (item tokens in correct order).
	CorrectOrder []string `json:"-"`

	// Numeric target for tiebreaker closest-guess questions.
	Target float64 `json:"-"`
}

type RoundConfig struct {
	QuestionCount int           `json:"questionCount,omitempty"`
	QuestionTime  time.Duration `json:"questionTime,omitempty"` // shared per-question countdown
	RoundTime     time.Duration `json:"roundTime,omitempty"`    // global countdown (speed round, hidden object)

	PointsEasy   int `json:"pointsEasy,omitempty"`
	PointsMedium int `json:"pointsMedium,omitempty"`
	PointsHard   int `json:"pointsHard,omitempty"`

	WrongPenalty    int `json:"wrongPenalty,omitempty"`
	NoAnswerPenalty int `json:"noAnswerPenalty,omitempty"`

	// Hidden object: points per full second remaining when a player
	// finds the last item.
	TimeBonusPerSecond int `json:"timeBonusPerSecond,omitempty"`
}

func (c RoundConfig) PointsFor(d Difficulty) int {
	switch d {
	case DifficultyHard:
		return c.PointsHard
	case DifficultyMedium:
		return c.PointsMedium
	default:
		return c.PointsEasy
	}
}

type RoundDefinition struct {
	Type       RoundType  `json:"type"`
	Category   string     `json:"category,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Config     RoundConfig `json:"config"`
}

// TracksDebt reports whether wrong and missed answers accrue repayable
// debt instead of being subtracted from the score immediately.
func (d RoundDefinition) TracksDebt() bool {
	return d.Type == RoundWipeout
}

func (d RoundDefinition) withDefaults() RoundDefinition {
	c := &d.Config
	if c.QuestionCount == 0 {
		c.QuestionCount = defaultQuestionCount(d.Type)
	}
	if c.QuestionTime == 0 {
		c.QuestionTime = 25 * time.Second
	}
	if c.RoundTime == 0 {
		c.RoundTime = 90 * time.Second
	}
	if c.PointsEasy == 0 {
		c.PointsEasy = 1
	}
	if c.PointsMedium == 0 {
		c.PointsMedium = 2
	}
	if c.PointsHard == 0 {
		c.PointsHard = 3
	}
	return d
}

func defaultQuestionCount(t RoundType) int {
	switch t {
	case RoundSpeed:
		return 20
	case RoundHiddenObject:
		return 1
	default:
		return 6
	}
}

// ledgerKey identifies one AnswerRecord: exactly one record may exist
// per (player, round, question).
type ledgerKey struct {
	Round      int
	QuestionID string
}

// AnswerRecord is immutable once Finalized is set.
type AnswerRecord struct {
	Value     *string `json:"value"`
	Correct   bool    `json:"correct"`
	NoAnswer  bool    `json:"noAnswer"`
	Delta     int     `json:"delta"`
	Finalized bool    `json:"finalized"`
}

// Contribution is a player's running outcome tally for the current round.
type Contribution struct {
	Correct     int `json:"correct"`
	Wrong       int `json:"wrong"`
	NoAnswer    int `json:"noAnswer"`
	Skipped     int `json:"skipped"`
	ItemsFound  int `json:"itemsFound"`
	WrongClicks int `json:"wrongClicks"`
}

func (c *Contribution) add(o Contribution) {
	c.Correct += o.Correct
	c.Wrong += o.Wrong
	c.NoAnswer += o.NoAnswer
	c.Skipped += o.Skipped
	c.ItemsFound += o.ItemsFound
	c.WrongClicks += o.WrongClicks
}

const unfrozen = -1

type PlayerData struct {
	ID        string
	Name      string
	Connected bool

	Score           int
	RoundStartScore int

	// Active gameplay debt: accrued by wrong/missed answers in
	// debt-tracked rounds, repaid before new points are credited.
	Debt int

	// Lifetime total credited back through the restore extra.
	RestoredTotal int

	Answers map[ledgerKey]*AnswerRecord

	FrozenForIndex int
	FrozenBy       string

	UsedExtrasRound map[ExtraKind]int
	UsedExtrasLife  map[ExtraKind]int

	Round Contribution
}

func NewPlayerData(id, name string) *PlayerData {
	return &PlayerData{
		ID:              id,
		Name:            name,
		Connected:       true,
		Answers:         make(map[ledgerKey]*AnswerRecord),
		FrozenForIndex:  unfrozen,
		UsedExtrasRound: make(map[ExtraKind]int),
		UsedExtrasLife:  make(map[ExtraKind]int),
	}
}

// RoundScore is the player's score relative to the round baseline.
func (p *PlayerData) RoundScore() int {
	return p.Score - p.RoundStartScore
}

// RestorableTotal is the amount the restore extra can still target:
// active debt plus any negative balance from direct-penalty rounds.
func (p *PlayerData) RestorableTotal() int {
	total := p.Debt
	if p.Score < 0 {
		total += -p.Score
	}
	return total
}

func (p *PlayerData) record(round int, questionID string) (*AnswerRecord, bool) {
	rec, ok := p.Answers[ledgerKey{Round: round, QuestionID: questionID}]
	return rec, ok
}

func (p *PlayerData) putRecord(round int, questionID string, rec *AnswerRecord) {
	p.Answers[ledgerKey{Round: round, QuestionID: questionID}] = rec
}
