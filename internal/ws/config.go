package ws

import "time"

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024

	// Inbound action rate limit per connection: sustained rate and
	// burst. The speed round is the hot path this has to tolerate.
	actionRate  = 10
	actionBurst = 20
)
