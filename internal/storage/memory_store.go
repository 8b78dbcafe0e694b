package storage

import (
	"context"
	"sync"
	"time"

	"github.com/Paulagot/quizroom/internal/game"
	"github.com/google/uuid"
)

// MemoryQuestionStore backs tests and DATABASE_URL-less dev runs.
type MemoryQuestionStore struct {
	mu   sync.RWMutex
	rows map[string]QuestionRow
}

func NewMemoryQuestionStore() *MemoryQuestionStore {
	return &MemoryQuestionStore{rows: make(map[string]QuestionRow)}
}

func (s *MemoryQuestionStore) Load(_ context.Context, f game.Filter) ([]game.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]game.Question, 0)
	for _, r := range s.rows {
		if !matchesFilter(r, f) {
			continue
		}
		out = append(out, r.toQuestion())
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryQuestionStore) CreateQuestion(_ context.Context, in CreateQuestionInput) (QuestionRow, error) {
	row := QuestionRow{
		ID:           uuid.NewString(),
		Type:         in.Type,
		Text:         in.Text,
		MediaURL:     in.MediaURL,
		Options:      in.Options,
		Answer:       in.Answer,
		Category:     in.Category,
		Difficulty:   in.Difficulty,
		Zones:        in.Zones,
		CorrectOrder: in.CorrectOrder,
		Target:       in.Target,
		IsActive:     in.IsActive,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	s.rows[row.ID] = row
	s.mu.Unlock()
	return row, nil
}

func (s *MemoryQuestionStore) ListQuestions(_ context.Context, includeInactive bool) ([]QuestionRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]QuestionRow, 0, len(s.rows))
	for _, r := range s.rows {
		if !includeInactive && !r.IsActive {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *MemoryQuestionStore) SetQuestionActive(_ context.Context, id string, active bool) (QuestionRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rows[id]
	if !ok {
		return QuestionRow{}, ErrQuestionNotFound
	}
	r.IsActive = active
	s.rows[id] = r
	return r, nil
}
