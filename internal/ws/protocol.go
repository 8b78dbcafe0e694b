package ws

import (
	"encoding/json"

	"github.com/Paulagot/quizroom/internal/game"
)

type Envelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type clientMsg struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Inbound message types.
const (
	msgJoinRoom       = "join_room"
	msgStartRound     = "start_round"
	msgSkipQuestion   = "skip_question"
	msgSubmitAnswer   = "submit_answer"
	msgUseExtra       = "use_extra"
	msgReviewNext     = "review_next"
	msgFinishReview   = "finish_review"
	msgTiebreakAnswer = "tiebreak_answer"
)

// JoinPayload carries an optional player id so a reconnecting client
// resumes its existing ledger instead of joining fresh.
type JoinPayload struct {
	Name     string `json:"name"`
	PlayerID string `json:"playerId,omitempty"`
}

type SubmitAnswerPayload = game.AnswerSubmission

type UseExtraPayload = game.ExtraRequest

type TiebreakAnswerPayload struct {
	Guess float64 `json:"guess"`
}
