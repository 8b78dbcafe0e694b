package game

import (
	"context"
	"math/rand"
)

// Filter narrows a question-bank load. Zero values mean "any".
type Filter struct {
	Type       RoundType
	Category   string
	Difficulty Difficulty
	Limit      int
}

// QuestionLoader is the external question bank. The engine does its own
// fallback, shuffle and de-dup on top of whatever the loader returns.
type QuestionLoader interface {
	Load(ctx context.Context, f Filter) ([]Question, error)
}

// SelectQuestions draws count questions for a round definition.
// Tiers: strict category+difficulty, then relaxed difficulty, then
// relaxed both. Questions used anywhere in the room's history are
// excluded at every tier. Purity loss is accepted before count loss:
// the result is only short when the bank has nothing else unused, and
// only an entirely empty result is an error.
func SelectQuestions(ctx context.Context, loader QuestionLoader, def RoundDefinition, count int, used map[string]bool) ([]Question, error) {
	tiers := []Filter{
		{Type: def.Type, Category: def.Category, Difficulty: def.Difficulty},
		{Type: def.Type, Category: def.Category},
		{Type: def.Type},
	}

	picked := make([]Question, 0, count)
	seen := make(map[string]bool, count)

	for _, f := range tiers {
		if len(picked) >= count {
			break
		}
		candidates, err := loader.Load(ctx, f)
		if err != nil {
			return nil, err
		}

		fresh := candidates[:0:0]
		for _, q := range candidates {
			if used[q.ID] || seen[q.ID] {
				continue
			}
			fresh = append(fresh, q)
		}
		rand.Shuffle(len(fresh), func(i, j int) { fresh[i], fresh[j] = fresh[j], fresh[i] })

		for _, q := range fresh {
			if len(picked) >= count {
				break
			}
			picked = append(picked, q)
			seen[q.ID] = true
		}
	}

	if len(picked) == 0 {
		return nil, ErrNoQuestions
	}
	return picked, nil
}
