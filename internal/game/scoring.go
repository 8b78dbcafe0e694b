package game

import "strings"

// Scoring primitives. Every score mutation in the engine goes through
// ApplyDelta so the ledger invariants hold in one place:
//
//   - score is the sum of credited deltas
//   - gameplay negatives in debt-tracked rounds accrue debt instead of
//     subtracting score
//   - debt is repaid before new gameplay points are credited
//   - extras transfers never touch debt and rob never drives the target
//     negative

// DeltaKind distinguishes gameplay scoring from extras transfers; only
// gameplay deltas interact with the debt ledger.
type DeltaKind int

const (
	DeltaGameplay DeltaKind = iota
	DeltaExtra
)

// InitRoundTracking snapshots the round baseline and resets per-round
// tallies. Run for every player when a round starts.
func InitRoundTracking(p *PlayerData) {
	p.RoundStartScore = p.Score
	p.Round = Contribution{}
	p.UsedExtrasRound = make(map[ExtraKind]int)
}

// ApplyDelta mutates the player ledger and returns the amount actually
// credited to (or debited from) the score.
func ApplyDelta(p *PlayerData, delta int, kind DeltaKind, trackDebt bool) int {
	if kind == DeltaExtra {
		p.Score += delta
		return delta
	}

	if delta < 0 {
		if trackDebt {
			p.Debt += -delta
			return 0
		}
		p.Score += delta
		return delta
	}

	if trackDebt && p.Debt > 0 {
		absorbed := delta
		if absorbed > p.Debt {
			absorbed = p.Debt
		}
		p.Debt -= absorbed
		credited := delta - absorbed
		p.Score += credited
		return credited
	}

	p.Score += delta
	return delta
}

// EvaluateAnswer checks a submission against the correct-answer token:
// case-insensitive, whitespace-trimmed equality.
func EvaluateAnswer(q Question, submitted string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(q.Answer))
}

// FinalizeQuestion is the single authoritative sweep run when a question
// closes: every player without a record gets exactly one finalized
// no-answer record with the no-answer penalty applied once. Existing
// records are finalized untouched. Idempotent: finalized records are
// never revisited.
func FinalizeQuestion(players map[string]*PlayerData, round int, questionID string, cfg RoundConfig, trackDebt bool) {
	for _, p := range players {
		rec, ok := p.record(round, questionID)
		if ok {
			rec.Finalized = true
			continue
		}
		rec = &AnswerRecord{
			NoAnswer:  true,
			Delta:     -cfg.NoAnswerPenalty,
			Finalized: true,
		}
		p.putRecord(round, questionID, rec)
		p.Round.NoAnswer++
		if cfg.NoAnswerPenalty > 0 {
			ApplyDelta(p, -cfg.NoAnswerPenalty, DeltaGameplay, trackDebt)
		}
	}
}

// RestorePoints repays debt first, then credits any remainder against a
// negative balance, bounded by the per-use amount and the lifetime cap.
// Returns the amount restored (0 when nothing applies).
func RestorePoints(p *PlayerData, cfg ExtrasConfig) int {
	allowanceLeft := cfg.RestoreLifetimeCap - p.RestoredTotal
	if allowanceLeft <= 0 {
		return 0
	}

	amount := cfg.RestoreAmount
	if amount > allowanceLeft {
		amount = allowanceLeft
	}
	if restorable := p.RestorableTotal(); amount > restorable {
		amount = restorable
	}
	if amount <= 0 {
		return 0
	}

	payoff := amount
	if payoff > p.Debt {
		payoff = p.Debt
	}
	p.Debt -= payoff
	p.Score += amount - payoff
	p.RestoredTotal += amount
	return amount
}

// RobPoints transfers min(amount, target's current score) from target to
// thief. The target never goes negative and the transfer is never
// recorded as gameplay debt.
func RobPoints(thief, target *PlayerData, amount int) int {
	stolen := amount
	if target.Score < stolen {
		stolen = target.Score
	}
	if stolen <= 0 {
		return 0
	}
	ApplyDelta(target, -stolen, DeltaExtra, false)
	ApplyDelta(thief, stolen, DeltaExtra, false)
	return stolen
}
