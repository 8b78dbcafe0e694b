package game

// Sink is the messaging boundary. The engine emits named events scoped
// to the whole room, the host channel, or one player connection; the
// transport behind it is someone else's problem.
type Sink interface {
	ToRoom(code string, event string, payload any)
	ToHost(code string, event string, payload any)
	ToPlayer(code string, playerID string, event string, payload any)
}

// Outbound event names. These are a protocol contract with clients.
const (
	EventRoomState        = "room_state"
	EventRoundStarted     = "round_started"
	EventQuestion         = "question"
	EventPlayerQuestion   = "player_question"
	EventAnswerResult     = "answer_result"
	EventItemFound        = "item_found"
	EventReviewItem       = "review_item"
	EventReviewComplete   = "review_complete"
	EventRoundStats       = "round_stats"
	EventLeaderboard      = "leaderboard"
	EventTiebreakStart    = "tiebreak_start"
	EventTiebreakQuestion = "tiebreak_question"
	EventTiebreakResult   = "tiebreak_result"
	EventExtraResult      = "extra_result"
	EventPlayerFrozen     = "player_frozen"
	EventGameOver         = "game_over"
	EventError            = "error"
)

// NopSink discards everything; used by tests that only assert on state.
type NopSink struct{}

func (NopSink) ToRoom(string, string, any)           {}
func (NopSink) ToHost(string, string, any)           {}
func (NopSink) ToPlayer(string, string, string, any) {}
