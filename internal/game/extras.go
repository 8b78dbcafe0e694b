package game

import "math/rand"

// Extras: purchasable in-game effects. Validation happens before any
// state is touched, so a failed purchase applies nothing; the charge is
// deducted only once the effect is known to succeed.

type ExtrasConfig struct {
	HintPrice    int
	FreezePrice  int
	RobPrice     int
	RestorePrice int

	// RobAmount is the configured transfer, clamped to the target's
	// current score at apply time.
	RobAmount int

	RestoreAmount      int
	RestoreLifetimeCap int

	// Uses per extra kind per round; LifetimeLimit of 0 means no
	// per-game cap beyond the restore allowance.
	PerRoundLimit int
	LifetimeLimit int
}

func (c ExtrasConfig) withDefaults() ExtrasConfig {
	if c.HintPrice == 0 {
		c.HintPrice = 2
	}
	if c.FreezePrice == 0 {
		c.FreezePrice = 3
	}
	if c.RobPrice == 0 {
		c.RobPrice = 4
	}
	if c.RestorePrice == 0 {
		c.RestorePrice = 2
	}
	if c.RobAmount == 0 {
		c.RobAmount = 3
	}
	if c.RestoreAmount == 0 {
		c.RestoreAmount = 3
	}
	if c.RestoreLifetimeCap == 0 {
		c.RestoreLifetimeCap = 6
	}
	if c.PerRoundLimit == 0 {
		c.PerRoundLimit = 1
	}
	return c
}

func (c ExtrasConfig) price(k ExtraKind) (int, error) {
	switch k {
	case ExtraHint:
		return c.HintPrice, nil
	case ExtraFreeze:
		return c.FreezePrice, nil
	case ExtraRob:
		return c.RobPrice, nil
	case ExtraRestore:
		return c.RestorePrice, nil
	default:
		return 0, ErrUnknownExtra
	}
}

type ExtraRequest struct {
	Kind     ExtraKind `json:"kind"`
	TargetID string    `json:"targetId,omitempty"`
}

// ExtraResult is the structured outcome returned to the buyer; failures
// carry the rule that was violated, never a partial application.
type ExtraResult struct {
	Success  bool      `json:"success"`
	Kind     ExtraKind `json:"kind"`
	Error    string    `json:"error,omitempty"`
	TargetID string    `json:"targetId,omitempty"`

	Stolen      int      `json:"stolen,omitempty"`
	Restored    int      `json:"restored,omitempty"`
	HintOptions []string `json:"hintOptions,omitempty"`
}

func extraFailure(kind ExtraKind, err error) ExtraResult {
	return ExtraResult{Kind: kind, Error: err.Error()}
}

// useExtra runs with the room lock held.
func useExtra(r *Room, actorID string, req ExtraRequest, cfg ExtrasConfig) ExtraResult {
	actor, err := r.player(actorID)
	if err != nil {
		return extraFailure(req.Kind, err)
	}
	if r.Phase != PhaseAsking || r.engine == nil {
		return extraFailure(req.Kind, ErrBadPhase)
	}

	price, err := cfg.price(req.Kind)
	if err != nil {
		return extraFailure(req.Kind, err)
	}
	if actor.UsedExtrasRound[req.Kind] >= cfg.PerRoundLimit {
		return extraFailure(req.Kind, ErrExtraLimitReached)
	}
	if cfg.LifetimeLimit > 0 && actor.UsedExtrasLife[req.Kind] >= cfg.LifetimeLimit {
		return extraFailure(req.Kind, ErrExtraLimitReached)
	}
	if actor.Score < price {
		return extraFailure(req.Kind, ErrInsufficientScore)
	}

	result := ExtraResult{Success: true, Kind: req.Kind, TargetID: req.TargetID}
	switch req.Kind {
	case ExtraHint:
		opts, err := hintOptions(r.engine, actorID)
		if err != nil {
			return extraFailure(req.Kind, err)
		}
		result.HintOptions = opts

	case ExtraFreeze:
		target, err := r.player(req.TargetID)
		if err != nil {
			return extraFailure(req.Kind, err)
		}
		if err := r.engine.Freeze(actor, target); err != nil {
			return extraFailure(req.Kind, err)
		}

	case ExtraRob:
		target, err := r.player(req.TargetID)
		if err != nil {
			return extraFailure(req.Kind, err)
		}
		if target.ID == actor.ID {
			return extraFailure(req.Kind, ErrSelfTarget)
		}
		if !target.Connected {
			return extraFailure(req.Kind, ErrTargetDisconnected)
		}
		result.Stolen = RobPoints(actor, target, cfg.RobAmount)

	case ExtraRestore:
		restored := RestorePoints(actor, cfg)
		if restored == 0 {
			return extraFailure(req.Kind, ErrNothingToRestore)
		}
		result.Restored = restored
	}

	ApplyDelta(actor, -price, DeltaExtra, false)
	actor.UsedExtrasRound[req.Kind]++
	actor.UsedExtrasLife[req.Kind]++
	r.extrasUsed[req.Kind]++
	return result
}

// hintOptions reduces the live question's option set to the correct
// answer plus one random wrong option, shuffled.
func hintOptions(engine RoundEngine, playerID string) ([]string, error) {
	q, ok := engine.PlayerQuestion(playerID)
	if !ok {
		q, ok = engine.CurrentQuestion()
	}
	if !ok || len(q.Options) < 2 || q.Answer == "" {
		return nil, ErrInvalidAnswer
	}

	wrong := make([]string, 0, len(q.Options)-1)
	var correct string
	for _, o := range q.Options {
		if EvaluateAnswer(q, o) {
			correct = o
			continue
		}
		wrong = append(wrong, o)
	}
	if correct == "" || len(wrong) == 0 {
		return nil, ErrInvalidAnswer
	}

	kept := []string{correct, wrong[rand.Intn(len(wrong))]}
	rand.Shuffle(len(kept), func(i, j int) { kept[i], kept[j] = kept[j], kept[i] })
	return kept, nil
}
