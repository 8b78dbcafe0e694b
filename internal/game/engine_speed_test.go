package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func speedEngine(t *testing.T, players map[string]*PlayerData, n int) *speedRound {
	t.Helper()

	questions := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, Question{
			ID:         string(rune('a' + i)),
			Type:       RoundSpeed,
			Options:    []string{"yes", "no"},
			Answer:     "yes",
			Difficulty: DifficultyEasy,
		})
	}
	def := RoundDefinition{Type: RoundSpeed, Config: RoundConfig{
		QuestionCount: n,
		RoundTime:     75 * time.Second,
		PointsEasy:    1,
		WrongPenalty:  1,
	}}
	e := newSpeedRound(def, 1, questions, players)
	e.Begin()
	return e
}

func TestSpeedRound_IndependentCursors(t *testing.T) {
	alice := NewPlayerData("p1", "Alice")
	bob := NewPlayerData("p2", "Bob")
	players := map[string]*PlayerData{"p1": alice, "p2": bob}
	e := speedEngine(t, players, 3)

	q, ok := e.PlayerQuestion("p1")
	require.True(t, ok)

	out, err := e.HandleAnswer(alice, AnswerSubmission{QuestionID: q.ID, Value: strptr("yes")})
	require.NoError(t, err)
	require.True(t, out.Correct)
	require.Equal(t, 1, out.Delta)
	require.NotNil(t, out.NextQuestion)
	require.Equal(t, 1, alice.Score)

	// Bob's queue is untouched by Alice's progress.
	_, ok = e.PlayerQuestion("p2")
	require.True(t, ok)
	require.Equal(t, 0, bob.Round.Correct)
}

func TestSpeedRound_SkipIsNotWrong(t *testing.T) {
	alice := NewPlayerData("p1", "Alice")
	players := map[string]*PlayerData{"p1": alice}
	e := speedEngine(t, players, 2)

	q, _ := e.PlayerQuestion("p1")
	out, err := e.HandleAnswer(alice, AnswerSubmission{QuestionID: q.ID, Value: nil})
	require.NoError(t, err)
	require.True(t, out.Skipped)
	require.Equal(t, 0, out.Delta, "voluntary skip carries no penalty")
	require.Equal(t, 1, alice.Round.Skipped)

	q, _ = e.PlayerQuestion("p1")
	out, err = e.HandleAnswer(alice, AnswerSubmission{QuestionID: q.ID, Value: strptr("no")})
	require.NoError(t, err)
	require.False(t, out.Correct)
	require.Equal(t, -1, alice.Score)
	require.Equal(t, 1, alice.Round.Wrong)
	require.True(t, out.QueueFinished)
}

func TestSpeedRound_FrozenQuestionForcedSkip(t *testing.T) {
	alice := NewPlayerData("p1", "Alice")
	bob := NewPlayerData("p2", "Bob")
	players := map[string]*PlayerData{"p1": alice, "p2": bob}
	e := speedEngine(t, players, 3)

	require.NoError(t, e.Freeze(alice, bob))

	// The current question is still answerable; the freeze lands on the
	// next one.
	q, _ := e.PlayerQuestion("p2")
	_, err := e.HandleAnswer(bob, AnswerSubmission{QuestionID: q.ID, Value: strptr("yes")})
	require.NoError(t, err)

	q, _ = e.PlayerQuestion("p2")
	out, err := e.HandleAnswer(bob, AnswerSubmission{QuestionID: q.ID, Value: strptr("yes")})
	require.ErrorIs(t, err, ErrPlayerFrozen)
	require.True(t, out.Skipped)
	require.Equal(t, 0, out.Delta)
	require.NotNil(t, out.NextQuestion, "queue keeps moving past the frozen slot")
	require.Equal(t, 1, bob.Round.Skipped)

	// The forced skip is recorded the same way a voluntary one is.
	rec, ok := bob.record(1, q.ID)
	require.True(t, ok)
	require.Nil(t, rec.Value)
	require.False(t, rec.NoAnswer, "a consumed frozen slot reviews as a skip, not a missed answer")
	require.Zero(t, rec.Delta)

	// The freeze is consumed; the next question is answerable.
	q, _ = e.PlayerQuestion("p2")
	require.Equal(t, out.NextQuestion.ID, q.ID)
	out, err = e.HandleAnswer(bob, AnswerSubmission{QuestionID: q.ID, Value: strptr("yes")})
	require.NoError(t, err)
	require.True(t, out.Correct)
	require.Equal(t, unfrozen, bob.FrozenForIndex)
}

func TestSpeedRound_ExhaustedQueue(t *testing.T) {
	alice := NewPlayerData("p1", "Alice")
	players := map[string]*PlayerData{"p1": alice}
	e := speedEngine(t, players, 1)

	q, _ := e.PlayerQuestion("p1")
	out, err := e.HandleAnswer(alice, AnswerSubmission{QuestionID: q.ID, Value: strptr("yes")})
	require.NoError(t, err)
	require.True(t, out.QueueFinished)

	_, err = e.HandleAnswer(alice, AnswerSubmission{QuestionID: q.ID, Value: strptr("yes")})
	require.ErrorIs(t, err, ErrStaleQuestion)
}

func TestSpeedRound_AdvanceEndsRoundWithoutPenalties(t *testing.T) {
	alice := NewPlayerData("p1", "Alice")
	players := map[string]*PlayerData{"p1": alice}
	e := speedEngine(t, players, 5)

	require.False(t, e.Advance())
	require.Equal(t, 0, alice.Score, "unreached queue items cost nothing")
}
