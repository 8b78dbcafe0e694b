package storage

import (
	"context"
	"errors"

	"github.com/Paulagot/quizroom/internal/game"
)

var ErrQuestionNotFound = errors.New("question not found")

// QuestionRow is the admin-facing view of a stored question, correct
// answer included.
type QuestionRow struct {
	ID           string          `json:"id"`
	Type         game.RoundType  `json:"type"`
	Text         string          `json:"text"`
	MediaURL     string          `json:"mediaUrl,omitempty"`
	Options      []string        `json:"options,omitempty"`
	Answer       string          `json:"answer"`
	Category     string          `json:"category,omitempty"`
	Difficulty   game.Difficulty `json:"difficulty,omitempty"`
	Zones        []game.Zone     `json:"zones,omitempty"`
	CorrectOrder []string        `json:"correctOrder,omitempty"`
	Target       float64         `json:"target,omitempty"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    string          `json:"createdAt"`
}

type CreateQuestionInput struct {
	Type         game.RoundType  `json:"type"`
	Text         string          `json:"text"`
	MediaURL     string          `json:"mediaUrl,omitempty"`
	Options      []string        `json:"options,omitempty"`
	Answer       string          `json:"answer"`
	Category     string          `json:"category,omitempty"`
	Difficulty   game.Difficulty `json:"difficulty,omitempty"`
	Zones        []game.Zone     `json:"zones,omitempty"`
	CorrectOrder []string        `json:"correctOrder,omitempty"`
	Target       float64         `json:"target,omitempty"`
	IsActive     bool            `json:"isActive"`
}

// QuestionStore is the question bank. Load serves the engine's
// selection ladder; the rest is the admin surface.
type QuestionStore interface {
	game.QuestionLoader

	CreateQuestion(ctx context.Context, in CreateQuestionInput) (QuestionRow, error)
	ListQuestions(ctx context.Context, includeInactive bool) ([]QuestionRow, error)
	SetQuestionActive(ctx context.Context, id string, active bool) (QuestionRow, error)
}

func (r QuestionRow) toQuestion() game.Question {
	return game.Question{
		ID:           r.ID,
		Type:         r.Type,
		Text:         r.Text,
		MediaURL:     r.MediaURL,
		Options:      r.Options,
		Answer:       r.Answer,
		Category:     r.Category,
		Difficulty:   r.Difficulty,
		Zones:        r.Zones,
		CorrectOrder: r.CorrectOrder,
		Target:       r.Target,
	}
}

func matchesFilter(r QuestionRow, f game.Filter) bool {
	if !r.IsActive {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.Difficulty != "" && r.Difficulty != f.Difficulty {
		return false
	}
	return true
}
