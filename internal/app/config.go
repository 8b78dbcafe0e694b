package app

import "time"

type Config struct {
	HTTPAddr string

	// DatabaseURL is optional; without it questions live in an in-memory
	// store, which is enough for development and tests.
	DatabaseURL string

	// NATSURL is optional; when set every room event is mirrored onto
	// NATS subjects for external consumers.
	NATSURL string

	AdminToken string

	LogLevel string
	LogFile  string

	AnswerGrace    time.Duration
	TiebreakWindow time.Duration
	PrizeCount     int
}
