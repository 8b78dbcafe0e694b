package service

import (
	"context"

	"github.com/Paulagot/quizroom/internal/game"
)

type gameService struct {
	orc *game.Orchestrator
	cfg Config
}

func NewGameService(orc *game.Orchestrator, cfg Config) GameService {
	if len(cfg.DefaultRounds) == 0 {
		cfg.DefaultRounds = defaultRounds()
	}
	return &gameService{orc: orc, cfg: cfg}
}

func (s *gameService) CreateRoom(rounds []game.RoundDefinition) *game.Room {
	if len(rounds) == 0 {
		rounds = s.cfg.DefaultRounds
	}
	return s.orc.CreateRoom(rounds)
}

func (s *gameService) GetRoom(code string) (*game.Room, bool) {
	return s.orc.Rooms().GetRoom(code)
}

func (s *gameService) DeleteRoom(code string) {
	s.orc.Rooms().DeleteRoom(code)
}

func (s *gameService) Join(code, playerID, name string) (bool, error) {
	return s.orc.Join(code, playerID, name)
}

func (s *gameService) Disconnect(code, playerID string) {
	s.orc.Disconnect(code, playerID)
}

func (s *gameService) StartRound(ctx context.Context, code, playerID string) error {
	return s.orc.StartRound(ctx, code, playerID)
}

func (s *gameService) SkipQuestion(code, playerID string) error {
	return s.orc.SkipQuestion(code, playerID)
}

func (s *gameService) SubmitAnswer(code, playerID string, sub game.AnswerSubmission) error {
	return s.orc.SubmitAnswer(code, playerID, sub)
}

func (s *gameService) UseExtra(code, playerID string, req game.ExtraRequest) (game.ExtraResult, error) {
	return s.orc.UseExtra(code, playerID, req)
}

func (s *gameService) ReviewNext(code, playerID string) error {
	return s.orc.ReviewNext(code, playerID)
}

func (s *gameService) FinishReview(code, playerID string) error {
	return s.orc.FinishReview(code, playerID)
}

func (s *gameService) SubmitTiebreakGuess(code, playerID string, guess float64) error {
	return s.orc.SubmitTiebreakGuess(code, playerID, guess)
}
