package service

import (
	"context"
	"time"

	"github.com/Paulagot/quizroom/internal/game"
)

type Config struct {
	// DefaultRounds is used when a room is created without explicit
	// round definitions.
	DefaultRounds []game.RoundDefinition
}

// GameService is the surface the transport layer talks to; everything
// behind it is the room engine.
type GameService interface {
	CreateRoom(rounds []game.RoundDefinition) *game.Room
	GetRoom(code string) (*game.Room, bool)
	DeleteRoom(code string)

	Join(code, playerID, name string) (isHost bool, err error)
	Disconnect(code, playerID string)

	StartRound(ctx context.Context, code, playerID string) error
	SkipQuestion(code, playerID string) error
	SubmitAnswer(code, playerID string, sub game.AnswerSubmission) error
	UseExtra(code, playerID string, req game.ExtraRequest) (game.ExtraResult, error)
	ReviewNext(code, playerID string) error
	FinishReview(code, playerID string) error
	SubmitTiebreakGuess(code, playerID string, guess float64) error
}

func defaultRounds() []game.RoundDefinition {
	return []game.RoundDefinition{
		{Type: game.RoundGeneralTrivia, Config: game.RoundConfig{QuestionCount: 6, QuestionTime: 25 * time.Second}},
		{Type: game.RoundWipeout, Config: game.RoundConfig{QuestionCount: 6, QuestionTime: 20 * time.Second, WrongPenalty: 1, NoAnswerPenalty: 1}},
		{Type: game.RoundSpeed, Config: game.RoundConfig{QuestionCount: 20, RoundTime: 75 * time.Second}},
	}
}
