package service

import (
	"context"
	"testing"

	"github.com/Paulagot/quizroom/internal/game"
	"github.com/Paulagot/quizroom/internal/storage"
	"github.com/stretchr/testify/require"
)

func TestAdminService_CreateQuestion_Validation(t *testing.T) {
	svc := NewAdminService(storage.NewMemoryQuestionStore())
	ctx := context.Background()

	_, err := svc.CreateQuestion(ctx, storage.CreateQuestionInput{Type: game.RoundGeneralTrivia, Text: "   "})
	require.Error(t, err, "blank text rejected")

	_, err = svc.CreateQuestion(ctx, storage.CreateQuestionInput{Text: "Q?", Answer: "A"})
	require.Error(t, err, "missing type rejected")

	_, err = svc.CreateQuestion(ctx, storage.CreateQuestionInput{Type: game.RoundGeneralTrivia, Text: "Q?"})
	require.Error(t, err, "trivia question needs an answer")

	_, err = svc.CreateQuestion(ctx, storage.CreateQuestionInput{Type: game.RoundHiddenObject, Text: "Find them"})
	require.Error(t, err, "hidden object question needs zones")

	_, err = svc.CreateQuestion(ctx, storage.CreateQuestionInput{Type: game.RoundOrderImage, Text: "Order", CorrectOrder: []string{"only"}})
	require.Error(t, err, "order question needs at least two items")
}

func TestAdminService_CreateQuestion_Success(t *testing.T) {
	svc := NewAdminService(storage.NewMemoryQuestionStore())
	ctx := context.Background()

	row, err := svc.CreateQuestion(ctx, storage.CreateQuestionInput{
		Type:     game.RoundGeneralTrivia,
		Text:     "  Capital of Peru?  ",
		Answer:   " Lima ",
		IsActive: true,
	})
	require.NoError(t, err)
	require.Equal(t, "Capital of Peru?", row.Text)
	require.Equal(t, "Lima", row.Answer)

	// Tiebreaker questions carry a numeric target, no answer token.
	row, err = svc.CreateQuestion(ctx, storage.CreateQuestionInput{
		Type:     game.RoundTiebreaker,
		Text:     "Length of the Nile in km?",
		Target:   6650,
		IsActive: true,
	})
	require.NoError(t, err)
	require.Equal(t, float64(6650), row.Target)

	// Hidden object with zones.
	_, err = svc.CreateQuestion(ctx, storage.CreateQuestionInput{
		Type: game.RoundHiddenObject,
		Text: "Find the key",
		Zones: []game.Zone{
			{ID: "z1", Label: "Key", X: 0.1, Y: 0.1, W: 0.2, H: 0.2},
		},
		IsActive: true,
	})
	require.NoError(t, err)
}

func TestAdminService_SetQuestionActive(t *testing.T) {
	svc := NewAdminService(storage.NewMemoryQuestionStore())
	ctx := context.Background()

	row, err := svc.CreateQuestion(ctx, storage.CreateQuestionInput{
		Type: game.RoundGeneralTrivia, Text: "Q?", Answer: "A", IsActive: true,
	})
	require.NoError(t, err)

	updated, err := svc.SetQuestionActive(ctx, row.ID, false)
	require.NoError(t, err)
	require.False(t, updated.IsActive)

	_, err = svc.SetQuestionActive(ctx, "  ", true)
	require.Error(t, err, "blank id rejected before hitting the store")
}
