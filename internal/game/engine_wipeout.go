package game

// wipeoutRound is the general flow with deferred penalties: a wrong or
// missed answer never subtracts score immediately, it accrues debt that
// later correct answers repay before any new points are credited. This
// replaces "floor score at zero" with "pay debt first"; debt may exceed
// score and is only resolved via restore or further correct answers.
type wipeoutRound struct {
	generalRound
}

func newWipeoutRound(def RoundDefinition, round int, questions []Question, players map[string]*PlayerData) *wipeoutRound {
	e := &wipeoutRound{generalRound{roundBase: newRoundBase(def, round, questions, players)}}
	e.trackDebt = true
	return e
}
