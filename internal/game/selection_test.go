package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// bankLoader filters a static question list the way a real store would.
type bankLoader struct {
	questions []Question
	err       error
}

func (b bankLoader) Load(_ context.Context, f Filter) ([]Question, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := make([]Question, 0)
	for _, q := range b.questions {
		if f.Type != "" && q.Type != f.Type {
			continue
		}
		if f.Category != "" && q.Category != f.Category {
			continue
		}
		if f.Difficulty != "" && q.Difficulty != f.Difficulty {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func bankQuestion(id, category string, d Difficulty) Question {
	return Question{ID: id, Type: RoundGeneralTrivia, Text: id, Category: category, Difficulty: d}
}

func TestSelectQuestions_FallbackTopsUp(t *testing.T) {
	loader := bankLoader{questions: []Question{
		bankQuestion("s1", "science", DifficultyEasy),
		bankQuestion("s2", "science", DifficultyEasy),
		bankQuestion("s3", "science", DifficultyHard),
		bankQuestion("s4", "science", DifficultyHard),
		bankQuestion("h1", "history", DifficultyMedium),
		bankQuestion("h2", "history", DifficultyMedium),
	}}
	def := RoundDefinition{Type: RoundGeneralTrivia, Category: "science", Difficulty: DifficultyEasy}

	picked, err := SelectQuestions(context.Background(), loader, def, 6, map[string]bool{})
	require.NoError(t, err)
	require.Len(t, picked, 6, "relaxed tiers top up to the requested count")

	ids := make(map[string]bool)
	for _, q := range picked {
		require.False(t, ids[q.ID], "question %s drawn twice", q.ID)
		ids[q.ID] = true
	}
	require.True(t, ids["s1"] && ids["s2"], "strict-tier matches always included")
}

func TestSelectQuestions_ExcludesRoomHistory(t *testing.T) {
	loader := bankLoader{questions: []Question{
		bankQuestion("s1", "science", DifficultyEasy),
		bankQuestion("s2", "science", DifficultyEasy),
		bankQuestion("s3", "science", DifficultyEasy),
	}}
	def := RoundDefinition{Type: RoundGeneralTrivia, Category: "science", Difficulty: DifficultyEasy}

	picked, err := SelectQuestions(context.Background(), loader, def, 3, map[string]bool{"s2": true})
	require.NoError(t, err)
	require.Len(t, picked, 2)
	for _, q := range picked {
		require.NotEqual(t, "s2", q.ID)
	}
}

func TestSelectQuestions_PartialResultIsNotAnError(t *testing.T) {
	loader := bankLoader{questions: []Question{
		bankQuestion("s1", "science", DifficultyEasy),
	}}
	def := RoundDefinition{Type: RoundGeneralTrivia}

	picked, err := SelectQuestions(context.Background(), loader, def, 6, map[string]bool{})
	require.NoError(t, err)
	require.Len(t, picked, 1)
}

func TestSelectQuestions_EmptyBank(t *testing.T) {
	def := RoundDefinition{Type: RoundGeneralTrivia}

	_, err := SelectQuestions(context.Background(), bankLoader{}, def, 6, map[string]bool{})
	require.ErrorIs(t, err, ErrNoQuestions)
}
