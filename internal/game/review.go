package game

// Review replays a completed round one question per explicit host call.
// Players see their own submission against the correct answer; the host
// sees aggregate counts. The review-complete signal is separate from
// the phase transition so the host controls pacing.

type PlayerReview struct {
	Submitted *string `json:"submitted"`
	Correct   bool    `json:"correct"`
	NoAnswer  bool    `json:"noAnswer"`
	Skipped   bool    `json:"skipped"`
	Delta     int     `json:"delta"`
}

type ReviewSummary struct {
	Correct     int     `json:"correct"`
	Wrong       int     `json:"wrong"`
	NoAnswer    int     `json:"noAnswer"`
	PctCorrect  float64 `json:"pctCorrect"`
	PctWrong    float64 `json:"pctWrong"`
	PctNoAnswer float64 `json:"pctNoAnswer"`
}

type ReviewItem struct {
	Index         int                     `json:"index"`
	Question      Question                `json:"question"`
	CorrectAnswer string                  `json:"correctAnswer"`
	Submissions   map[string]PlayerReview `json:"-"`
	Summary       ReviewSummary           `json:"summary"`
}

// buildReviewItem assembles one review step from the answer ledgers.
// Players with no record for the question (possible in player-paced
// modes) are simply absent from the submissions map.
func buildReviewItem(players map[string]*PlayerData, round, index int, q Question, correct string) ReviewItem {
	item := ReviewItem{
		Index:         index,
		Question:      q,
		CorrectAnswer: correct,
		Submissions:   make(map[string]PlayerReview, len(players)),
	}

	for id, p := range players {
		rec, ok := p.record(round, q.ID)
		if !ok {
			continue
		}
		item.Submissions[id] = PlayerReview{
			Submitted: rec.Value,
			Correct:   rec.Correct,
			NoAnswer:  rec.NoAnswer,
			Skipped:   !rec.NoAnswer && rec.Value == nil && !rec.Correct,
			Delta:     rec.Delta,
		}
		switch {
		case rec.Correct:
			item.Summary.Correct++
		case rec.NoAnswer:
			item.Summary.NoAnswer++
		default:
			item.Summary.Wrong++
		}
	}

	total := item.Summary.Correct + item.Summary.Wrong + item.Summary.NoAnswer
	if total > 0 {
		item.Summary.PctCorrect = 100 * float64(item.Summary.Correct) / float64(total)
		item.Summary.PctWrong = 100 * float64(item.Summary.Wrong) / float64(total)
		item.Summary.PctNoAnswer = 100 * float64(item.Summary.NoAnswer) / float64(total)
	}
	return item
}
