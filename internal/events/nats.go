package events

import (
	"encoding/json"
	"fmt"

	"github.com/Paulagot/quizroom/internal/game"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// NATSSink mirrors every outbound room event onto NATS subjects so
// external consumers (analytics, replay tooling) observe the same
// protocol stream the clients see. It decorates the real sink; publish
// failures are logged and never reach the engine.
type NATSSink struct {
	inner game.Sink
	nc    *nats.Conn
	log   *zap.Logger
}

func NewNATSSink(inner game.Sink, nc *nats.Conn, log *zap.Logger) *NATSSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &NATSSink{inner: inner, nc: nc, log: log}
}

type envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

func (s *NATSSink) publish(subject, event string, payload any) {
	b, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		s.log.Error("nats marshal failed", zap.String("subject", subject), zap.Error(err))
		return
	}
	if err := s.nc.Publish(subject, b); err != nil {
		s.log.Warn("nats publish failed", zap.String("subject", subject), zap.Error(err))
	}
}

func (s *NATSSink) ToRoom(code string, event string, payload any) {
	s.inner.ToRoom(code, event, payload)
	s.publish(fmt.Sprintf("quiz.room.%s", code), event, payload)
}

func (s *NATSSink) ToHost(code string, event string, payload any) {
	s.inner.ToHost(code, event, payload)
	s.publish(fmt.Sprintf("quiz.room.%s.host", code), event, payload)
}

func (s *NATSSink) ToPlayer(code string, playerID string, event string, payload any) {
	s.inner.ToPlayer(code, playerID, event, payload)
	s.publish(fmt.Sprintf("quiz.room.%s.player.%s", code, playerID), event, payload)
}
