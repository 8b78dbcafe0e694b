package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

type Config struct {
	// Answers arriving after the deadline but within the grace window
	// are still accepted; later ones are ignored and the advance sweep
	// synthesizes their no-answer records.
	AnswerGrace time.Duration

	TiebreakWindow time.Duration
	TiebreakBonus  int

	// PrizeCount is how many leaderboard places award prizes; ties at
	// those ranks on the final leaderboard trigger the tiebreaker.
	PrizeCount int

	Extras ExtrasConfig

	// SelectTimeout bounds question-bank loads done from timer context.
	SelectTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.AnswerGrace == 0 {
		c.AnswerGrace = 750 * time.Millisecond
	}
	if c.TiebreakWindow == 0 {
		c.TiebreakWindow = 20 * time.Second
	}
	if c.TiebreakBonus == 0 {
		c.TiebreakBonus = 1
	}
	if c.PrizeCount == 0 {
		c.PrizeCount = 3
	}
	if c.SelectTimeout == 0 {
		c.SelectTimeout = 5 * time.Second
	}
	c.Extras = c.Extras.withDefaults()
	return c
}

// Orchestrator drives every room's phase machine. All inbound events
// (player answers, host commands, timer firings) for one room run to
// completion under that room's lock; phases are re-read before every
// commit, so stale timers and duplicate commands degrade to no-ops.
type Orchestrator struct {
	rm     *RoomManager
	loader QuestionLoader
	sink   Sink
	log    *zap.Logger
	cfg    Config
}

func NewOrchestrator(rm *RoomManager, loader QuestionLoader, sink Sink, log *zap.Logger, cfg Config) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &Orchestrator{
		rm:     rm,
		loader: loader,
		sink:   sink,
		log:    log,
		cfg:    cfg.withDefaults(),
	}
}

func (o *Orchestrator) Rooms() *RoomManager { return o.rm }

func (o *Orchestrator) CreateRoom(rounds []RoundDefinition) *Room {
	room := o.rm.CreateRoom(rounds)
	o.log.Info("room created", zap.String("room", room.Code), zap.Int("rounds", len(rounds)))
	return room
}

// withRoom serializes one event against the room. A panic inside a
// handler is confined to this room and surfaced as an error.
func (o *Orchestrator) withRoom(code string, fn func(r *Room) error) (err error) {
	room, ok := o.rm.GetRoom(code)
	if !ok {
		return ErrRoomNotFound
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	defer func() {
		if rec := recover(); rec != nil {
			o.log.Error("room event panicked",
				zap.String("room", code),
				zap.Any("panic", rec),
			)
			err = fmt.Errorf("internal error handling room event")
		}
	}()
	return fn(room)
}

// Join adds (or reconnects) a player and immediately resyncs them with
// the full room snapshot.
func (o *Orchestrator) Join(code, playerID, name string) (isHost bool, err error) {
	err = o.withRoom(code, func(r *Room) error {
		if r.Phase == PhaseEnded {
			return ErrBadPhase
		}
		isHost = r.addPlayer(NewPlayerData(playerID, name))
		o.log.Info("player joined",
			zap.String("room", code),
			zap.String("player_id", playerID),
			zap.Bool("host", isHost),
		)
		o.broadcastState(r)
		return nil
	})
	return isHost, err
}

func (o *Orchestrator) Disconnect(code, playerID string) {
	_ = o.withRoom(code, func(r *Room) error {
		r.markDisconnected(playerID)
		o.broadcastState(r)
		return nil
	})
}

// StartRound begins the next round in the room's definition list.
// Valid from waiting (first round) or leaderboard (subsequent rounds).
func (o *Orchestrator) StartRound(ctx context.Context, code, playerID string) error {
	return o.withRoom(code, func(r *Room) error {
		if r.HostID != playerID {
			return ErrNotHost
		}
		if r.Phase != PhaseWaiting && r.Phase != PhaseLeaderboard {
			return ErrBadPhase
		}
		if len(r.Players) == 0 {
			return ErrNoPlayers
		}
		if r.CurrentRound >= len(r.Rounds) {
			return ErrNoMoreRounds
		}

		def := r.Rounds[r.CurrentRound]
		questions, err := SelectQuestions(ctx, o.loader, def, def.Config.QuestionCount, r.usedQuestionIDs)
		if err != nil {
			o.log.Warn("question selection failed",
				zap.String("room", code),
				zap.String("type", string(def.Type)),
				zap.Error(err),
			)
			o.sink.ToHost(code, EventError, map[string]string{"message": err.Error()})
			return err
		}
		r.markUsed(questions)

		r.CurrentRound++
		r.extrasUsed = make(map[ExtraKind]int)
		r.engine = NewRoundEngine(def, r.CurrentRound, questions, r.Players)
		r.engine.Begin()
		r.Phase = PhaseAsking

		o.log.Info("round started",
			zap.String("room", code),
			zap.Int("round", r.CurrentRound),
			zap.String("type", string(def.Type)),
			zap.Int("questions", len(questions)),
		)
		o.sink.ToRoom(code, EventRoundStarted, map[string]any{
			"round": r.CurrentRound,
			"type":  def.Type,
		})
		o.broadcastState(r)
		o.openQuestion(r)
		return nil
	})
}

type QuestionPayload struct {
	Index    int      `json:"index"`
	Total    int      `json:"total"`
	Question Question `json:"question"`
	Deadline int64    `json:"deadline"`
}

// openQuestion arms the countdown for the next answer window and
// broadcasts the question. Speed and hidden-object rounds run one
// global round countdown; everything else counts down per question.
// Clients see the bare deadline, but the advance timer fires only
// after the grace window so late-but-graced answers still land.
func (o *Orchestrator) openQuestion(r *Room) {
	cfg := r.engine.Definition().Config
	code := r.Code

	switch r.engine.Type() {
	case RoundSpeed:
		r.deadline = time.Now().Add(cfg.RoundTime)
		r.engine.SetDeadline(r.deadline)
		r.timers.Arm(timerRound, cfg.RoundTime+o.cfg.AnswerGrace, func(gen int64) { o.onRoundTimeout(code, gen) })
		for id := range r.Players {
			if q, ok := r.engine.PlayerQuestion(id); ok {
				o.sink.ToPlayer(code, id, EventPlayerQuestion, QuestionPayload{
					Total:    len(r.Players),
					Question: q,
					Deadline: r.deadline.UnixMilli(),
				})
			}
		}

	case RoundHiddenObject:
		r.deadline = time.Now().Add(cfg.RoundTime)
		r.engine.SetDeadline(r.deadline)
		r.timers.Arm(timerRound, cfg.RoundTime+o.cfg.AnswerGrace, func(gen int64) { o.onRoundTimeout(code, gen) })
		if q, ok := r.engine.CurrentQuestion(); ok {
			o.sink.ToRoom(code, EventQuestion, QuestionPayload{
				Index:    r.engine.CurrentIndex(),
				Total:    r.engine.CurrentIndex() + r.engine.Remaining(),
				Question: q,
				Deadline: r.deadline.UnixMilli(),
			})
		}

	default:
		q, ok := r.engine.CurrentQuestion()
		if !ok {
			return
		}
		r.deadline = time.Now().Add(cfg.QuestionTime)
		r.engine.SetDeadline(r.deadline)
		r.timers.Arm(timerQuestion, cfg.QuestionTime+o.cfg.AnswerGrace, func(gen int64) { o.onQuestionTimeout(code, gen) })
		o.sink.ToRoom(code, EventQuestion, QuestionPayload{
			Index:    r.engine.CurrentIndex(),
			Total:    r.engine.CurrentIndex() + r.engine.Remaining(),
			Question: q,
			Deadline: r.deadline.UnixMilli(),
		})
	}
}

func (o *Orchestrator) onQuestionTimeout(code string, gen int64) {
	_ = o.withRoom(code, func(r *Room) error {
		if !r.timers.Valid(gen) || r.Phase != PhaseAsking || r.engine == nil {
			return nil
		}
		if r.engine.Advance() {
			o.broadcastState(r)
			o.openQuestion(r)
		} else {
			o.enterReview(r)
		}
		return nil
	})
}

func (o *Orchestrator) onRoundTimeout(code string, gen int64) {
	_ = o.withRoom(code, func(r *Room) error {
		if !r.timers.Valid(gen) || r.Phase != PhaseAsking || r.engine == nil {
			return nil
		}
		for r.engine.Advance() {
		}
		o.enterReview(r)
		return nil
	})
}

// SkipQuestion lets the host cut the current answer window short. The
// advance path is the same one the countdown takes: finalize, sweep,
// next question or review.
func (o *Orchestrator) SkipQuestion(code, playerID string) error {
	return o.withRoom(code, func(r *Room) error {
		if r.HostID != playerID {
			return ErrNotHost
		}
		if r.Phase != PhaseAsking || r.engine == nil {
			return ErrBadPhase
		}
		r.timers.Cancel(timerQuestion)
		r.timers.Cancel(timerRound)
		if r.engine.Advance() {
			o.broadcastState(r)
			o.openQuestion(r)
		} else {
			o.enterReview(r)
		}
		return nil
	})
}

// SubmitAnswer accepts an answer while its window (plus grace) is open.
// Late answers are rejected; the advance sweep will synthesize their
// no-answer outcome.
func (o *Orchestrator) SubmitAnswer(code, playerID string, sub AnswerSubmission) error {
	return o.withRoom(code, func(r *Room) error {
		p, err := r.player(playerID)
		if err != nil {
			return err
		}
		if r.Phase != PhaseAsking || r.engine == nil {
			return ErrBadPhase
		}
		if !r.deadline.IsZero() && time.Now().After(r.deadline.Add(o.cfg.AnswerGrace)) {
			return ErrAnswerWindowClosed
		}

		outcome, err := r.engine.HandleAnswer(p, sub)
		if errors.Is(err, ErrPlayerFrozen) && outcome.NextQuestion != nil {
			// Speed round consumed the frozen question as a forced skip.
			o.sink.ToPlayer(code, playerID, EventPlayerQuestion, QuestionPayload{
				Question: *outcome.NextQuestion,
				Deadline: r.deadline.UnixMilli(),
			})
			return err
		}
		if err != nil {
			return err
		}

		o.sink.ToPlayer(code, playerID, EventAnswerResult, outcome)
		if outcome.NextQuestion != nil {
			o.sink.ToPlayer(code, playerID, EventPlayerQuestion, QuestionPayload{
				Question: *outcome.NextQuestion,
				Deadline: r.deadline.UnixMilli(),
			})
		}
		if outcome.ZoneID != "" && outcome.Delta > 0 {
			o.sink.ToHost(code, EventItemFound, map[string]any{
				"playerId": playerID,
				"zoneId":   outcome.ZoneID,
				"foundAll": outcome.FoundAll,
			})
		}
		return nil
	})
}

// UseExtra validates and applies a purchasable effect. Failures carry
// the violated rule and apply no state.
func (o *Orchestrator) UseExtra(code, playerID string, req ExtraRequest) (ExtraResult, error) {
	var result ExtraResult
	err := o.withRoom(code, func(r *Room) error {
		result = useExtra(r, playerID, req, o.cfg.Extras)
		o.sink.ToPlayer(code, playerID, EventExtraResult, result)
		if !result.Success {
			o.log.Info("extra rejected",
				zap.String("room", code),
				zap.String("player_id", playerID),
				zap.String("kind", string(req.Kind)),
				zap.String("reason", result.Error),
			)
			return nil
		}
		switch req.Kind {
		case ExtraFreeze:
			o.sink.ToPlayer(code, req.TargetID, EventPlayerFrozen, map[string]any{
				"by": playerID,
			})
		case ExtraRob:
			o.sink.ToPlayer(code, req.TargetID, EventExtraResult, ExtraResult{
				Success: true, Kind: ExtraRob, TargetID: req.TargetID, Stolen: result.Stolen,
			})
		}
		o.broadcastState(r)
		return nil
	})
	return result, err
}

func (o *Orchestrator) enterReview(r *Room) {
	r.timers.Cancel(timerQuestion)
	r.timers.Cancel(timerRound)
	r.deadline = time.Time{}
	r.Phase = PhaseReviewing
	o.log.Info("round complete, reviewing",
		zap.String("room", r.Code),
		zap.Int("round", r.CurrentRound),
	)
	o.broadcastState(r)
}

type hostReviewPayload struct {
	Index         int           `json:"index"`
	Question      Question      `json:"question"`
	CorrectAnswer string        `json:"correctAnswer"`
	Summary       ReviewSummary `json:"summary"`
}

type playerReviewPayload struct {
	Index         int           `json:"index"`
	Question      Question      `json:"question"`
	CorrectAnswer string        `json:"correctAnswer"`
	You           *PlayerReview `json:"you,omitempty"`
}

// ReviewNext emits the next review question: players get their own
// submission against the correct answer, the host gets the aggregate.
// Past the last question it re-emits the review-complete signal.
func (o *Orchestrator) ReviewNext(code, playerID string) error {
	return o.withRoom(code, func(r *Room) error {
		if r.HostID != playerID {
			return ErrNotHost
		}
		if r.Phase != PhaseReviewing || r.engine == nil {
			return ErrBadPhase
		}

		item, ok := r.engine.NextReviewItem()
		if !ok {
			o.sink.ToRoom(code, EventReviewComplete, map[string]int{"round": r.CurrentRound})
			return nil
		}

		for id := range r.Players {
			payload := playerReviewPayload{
				Index:         item.Index,
				Question:      item.Question,
				CorrectAnswer: item.CorrectAnswer,
			}
			if sub, answered := item.Submissions[id]; answered {
				payload.You = &sub
			}
			o.sink.ToPlayer(code, id, EventReviewItem, payload)
		}
		o.sink.ToHost(code, EventReviewItem, hostReviewPayload{
			Index:         item.Index,
			Question:      item.Question,
			CorrectAnswer: item.CorrectAnswer,
			Summary:       item.Summary,
		})

		if r.engine.ReviewComplete() {
			o.sink.ToRoom(code, EventReviewComplete, map[string]int{"round": r.CurrentRound})
		}
		return nil
	})
}

// FinishReview moves reviewing → leaderboard on host command, which on
// the final round may divert into the tiebreaker or end the game.
func (o *Orchestrator) FinishReview(code, playerID string) error {
	return o.withRoom(code, func(r *Room) error {
		if r.HostID != playerID {
			return ErrNotHost
		}
		if r.Phase != PhaseReviewing {
			return ErrBadPhase
		}
		o.enterLeaderboard(r)
		return nil
	})
}

func (o *Orchestrator) enterLeaderboard(r *Room) {
	r.Phase = PhaseLeaderboard
	entries := buildLeaderboard(r.Players)
	o.sink.ToRoom(r.Code, EventLeaderboard, LeaderboardPayload{
		Code:        r.Code,
		Round:       r.CurrentRound,
		FinalRound:  r.onFinalRound(),
		Leaderboard: entries,
	})
	o.sink.ToHost(r.Code, EventRoundStats, buildRoundStats(r))
	o.broadcastState(r)

	if !r.onFinalRound() {
		return
	}
	tied := tiedAtPrizeBoundary(entries, o.cfg.PrizeCount)
	if len(tied) >= 2 && (r.tiebreak == nil || !r.tiebreak.Awarded) {
		o.startTiebreaker(r, tied)
		return
	}
	o.endGame(r)
}

func (o *Orchestrator) startTiebreaker(r *Room, tied []string) {
	r.Phase = PhaseTiebreaker
	r.tiebreak = NewTiebreaker(tied)
	o.log.Info("tiebreaker started",
		zap.String("room", r.Code),
		zap.Strings("participants", tied),
	)
	o.sink.ToRoom(r.Code, EventTiebreakStart, map[string]any{"participants": tied})
	o.broadcastState(r)
	o.nextTiebreakQuestion(r)
}

// nextTiebreakQuestion draws a never-reused numeric question and arms
// the answer window. Bank exhaustion is a host-visible error; the tie
// then stands and the game ends without a bonus.
func (o *Orchestrator) nextTiebreakQuestion(r *Room) {
	ctx, cancel := context.WithTimeout(context.Background(), o.cfg.SelectTimeout)
	defer cancel()

	candidates, err := o.loader.Load(ctx, Filter{Type: RoundTiebreaker})
	if err == nil {
		fresh := candidates[:0:0]
		for _, q := range candidates {
			if !r.usedTiebreakIDs[q.ID] {
				fresh = append(fresh, q)
			}
		}
		if len(fresh) == 0 {
			err = ErrTiebreakerExhausted
		} else {
			q := fresh[rand.Intn(len(fresh))]
			r.usedTiebreakIDs[q.ID] = true
			r.tiebreak.SetQuestion(q)

			r.deadline = time.Now().Add(o.cfg.TiebreakWindow)
			code := r.Code
			r.timers.Arm(timerTiebreak, o.cfg.TiebreakWindow+o.cfg.AnswerGrace, func(gen int64) { o.onTiebreakTimeout(code, gen) })

			payload := QuestionPayload{Question: q, Deadline: r.deadline.UnixMilli()}
			for _, id := range r.tiebreak.Participants {
				o.sink.ToPlayer(r.Code, id, EventTiebreakQuestion, payload)
			}
			o.sink.ToHost(r.Code, EventTiebreakQuestion, payload)
			return
		}
	}

	o.log.Warn("tiebreaker question draw failed", zap.String("room", r.Code), zap.Error(err))
	o.sink.ToHost(r.Code, EventError, map[string]string{"message": err.Error()})
	o.endGame(r)
}

func (o *Orchestrator) SubmitTiebreakGuess(code, playerID string, guess float64) error {
	return o.withRoom(code, func(r *Room) error {
		if r.Phase != PhaseTiebreaker || r.tiebreak == nil {
			return ErrBadPhase
		}
		if !r.deadline.IsZero() && time.Now().After(r.deadline.Add(o.cfg.AnswerGrace)) {
			return ErrAnswerWindowClosed
		}
		if err := r.tiebreak.SubmitGuess(playerID, guess); err != nil {
			return err
		}
		if r.tiebreak.AllAnswered() {
			r.timers.Cancel(timerTiebreak)
			o.resolveTiebreak(r)
		}
		return nil
	})
}

func (o *Orchestrator) onTiebreakTimeout(code string, gen int64) {
	_ = o.withRoom(code, func(r *Room) error {
		if !r.timers.Valid(gen) || r.Phase != PhaseTiebreaker || r.tiebreak == nil {
			return nil
		}
		o.resolveTiebreak(r)
		return nil
	})
}

// resolveTiebreak scores the round of guesses. A sole survivor gets the
// one-shot bonus (guarded by Awarded, so a duplicate resolution cannot
// double-apply) and play returns to the leaderboard; survivors of an
// exact tie get a fresh question restricted to themselves.
func (o *Orchestrator) resolveTiebreak(r *Room) {
	tb := r.tiebreak
	survivors, results := tb.Resolve()
	o.sink.ToRoom(r.Code, EventTiebreakResult, map[string]any{
		"results":   results,
		"survivors": survivors,
	})

	if len(survivors) == 1 && !tb.Awarded {
		tb.Winners = survivors
		tb.Awarded = true
		if winner, ok := r.Players[survivors[0]]; ok {
			ApplyDelta(winner, o.cfg.TiebreakBonus, DeltaExtra, false)
		}
		o.log.Info("tiebreaker resolved",
			zap.String("room", r.Code),
			zap.String("winner", survivors[0]),
		)
		r.deadline = time.Time{}
		o.enterLeaderboard(r)
		return
	}

	tb.CarryForward(survivors)
	o.nextTiebreakQuestion(r)
}

type GameOverPayload struct {
	Code         string             `json:"code"`
	RoundsPlayed int                `json:"roundsPlayed"`
	Leaderboard  []LeaderboardEntry `json:"leaderboard"`
}

func (o *Orchestrator) endGame(r *Room) {
	r.Phase = PhaseEnded
	r.deadline = time.Time{}
	r.release()
	o.log.Info("game over", zap.String("room", r.Code), zap.Int("rounds", r.CurrentRound))
	o.sink.ToRoom(r.Code, EventGameOver, GameOverPayload{
		Code:         r.Code,
		RoundsPlayed: r.CurrentRound,
		Leaderboard:  buildLeaderboard(r.Players),
	})
	o.broadcastState(r)
}

func (o *Orchestrator) broadcastState(r *Room) {
	o.sink.ToRoom(r.Code, EventRoomState, r.snapshotLocked())
}
