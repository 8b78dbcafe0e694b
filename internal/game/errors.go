package game

import "errors"

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrNotHost       = errors.New("not host")
	ErrBadPhase      = errors.New("bad phase")
	ErrNoPlayers     = errors.New("no players")
	ErrUnknownPlayer = errors.New("unknown player")
	ErrNoMoreRounds  = errors.New("no more rounds")

	ErrStaleQuestion      = errors.New("stale question id")
	ErrAlreadyAnswered    = errors.New("already answered")
	ErrAnswerWindowClosed = errors.New("answer window closed")
	ErrPlayerFrozen       = errors.New("player frozen for this question")
	ErrInvalidAnswer      = errors.New("invalid answer payload")

	ErrNoQuestions         = errors.New("question bank empty")
	ErrTiebreakerExhausted = errors.New("tiebreaker question bank exhausted")
	ErrNoActiveTiebreak    = errors.New("no active tiebreaker")
	ErrNotParticipant      = errors.New("not a tiebreaker participant")

	ErrSelfTarget          = errors.New("cannot target yourself")
	ErrTargetFrozen        = errors.New("target already frozen")
	ErrTargetDisconnected  = errors.New("target disconnected")
	ErrTooFewQuestionsLeft = errors.New("not enough questions left in round")
	ErrExtraLimitReached   = errors.New("extra usage limit reached")
	ErrInsufficientScore   = errors.New("insufficient score")
	ErrNothingToRestore    = errors.New("nothing to restore")
	ErrUnknownExtra        = errors.New("unknown extra")
)
