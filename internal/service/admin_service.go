package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Paulagot/quizroom/internal/game"
	"github.com/Paulagot/quizroom/internal/storage"
)

type AdminService interface {
	CreateQuestion(ctx context.Context, in storage.CreateQuestionInput) (storage.QuestionRow, error)
	ListQuestions(ctx context.Context, includeInactive bool) ([]storage.QuestionRow, error)
	SetQuestionActive(ctx context.Context, id string, active bool) (storage.QuestionRow, error)
}

type adminService struct {
	qs storage.QuestionStore
}

func NewAdminService(qs storage.QuestionStore) AdminService {
	return &adminService{qs: qs}
}

func (a *adminService) CreateQuestion(ctx context.Context, in storage.CreateQuestionInput) (storage.QuestionRow, error) {
	in.Text = strings.TrimSpace(in.Text)
	in.Answer = strings.TrimSpace(in.Answer)

	if in.Type == "" || in.Text == "" {
		return storage.QuestionRow{}, errors.New("invalid question payload")
	}
	switch in.Type {
	case game.RoundHiddenObject:
		if len(in.Zones) == 0 {
			return storage.QuestionRow{}, errors.New("hidden object question needs zones")
		}
	case game.RoundOrderImage:
		if len(in.CorrectOrder) < 2 {
			return storage.QuestionRow{}, errors.New("order question needs a canonical order")
		}
	case game.RoundTiebreaker:
		// Numeric closest-guess; Target may legitimately be zero.
	default:
		if in.Answer == "" {
			return storage.QuestionRow{}, errors.New("question needs a correct answer")
		}
	}
	return a.qs.CreateQuestion(ctx, in)
}

func (a *adminService) ListQuestions(ctx context.Context, includeInactive bool) ([]storage.QuestionRow, error) {
	return a.qs.ListQuestions(ctx, includeInactive)
}

func (a *adminService) SetQuestionActive(ctx context.Context, id string, active bool) (storage.QuestionRow, error) {
	if strings.TrimSpace(id) == "" {
		return storage.QuestionRow{}, errors.New("invalid id")
	}
	return a.qs.SetQuestionActive(ctx, id, active)
}
