package ws

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Paulagot/quizroom/internal/game"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Client struct {
	hub      *Hub
	roomCode string
	playerID string
	isHost   bool
	conn     *websocket.Conn
	send     chan []byte
	limiter  *rate.Limiter
}

// sendJSON enqueues one message for the write pump; a client that
// cannot keep up loses messages rather than blocking the hub.
func (c *Client) sendJSON(env Envelope) {
	b, err := json.Marshal(env)
	if err != nil {
		c.hub.log.Error("ws send marshal failed",
			zap.String("room", c.roomCode),
			zap.String("player_id", c.playerID),
			zap.Error(err),
		)
		return
	}
	select {
	case c.send <- b:
	default:
		c.hub.log.Warn("ws send buffer full, dropping message",
			zap.String("room", c.roomCode),
			zap.String("player_id", c.playerID),
			zap.String("type", env.Type),
		)
	}
}

func (c *Client) sendError(message string) {
	c.sendJSON(Envelope{Type: game.EventError, Payload: map[string]string{"message": message}})
}

func (c *Client) readPump() {
	defer func() {
		c.hub.svc.Disconnect(c.roomCode, c.playerID)
		c.hub.unregister <- c
		_ = c.conn.Close()

		c.hub.log.Info("ws connection closed",
			zap.String("room", c.roomCode),
			zap.String("player_id", c.playerID),
		)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg clientMsg
		if err := c.conn.ReadJSON(&msg); err != nil {
			c.hub.log.Warn("ws read failed",
				zap.String("room", c.roomCode),
				zap.String("player_id", c.playerID),
				zap.Error(err),
			)
			break
		}
		if !c.limiter.Allow() {
			c.sendError("slow down")
			continue
		}
		c.dispatch(msg)
	}
}

// dispatch maps one inbound message onto the engine. Rule violations
// come back as error events; nothing a client sends can take the room
// down.
func (c *Client) dispatch(msg clientMsg) {
	var err error
	switch msg.Type {
	case msgStartRound:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = c.hub.svc.StartRound(ctx, c.roomCode, c.playerID)
		cancel()

	case msgSkipQuestion:
		err = c.hub.svc.SkipQuestion(c.roomCode, c.playerID)

	case msgSubmitAnswer:
		var p SubmitAnswerPayload
		if jsonErr := json.Unmarshal(msg.Payload, &p); jsonErr != nil {
			c.sendError("bad payload")
			return
		}
		err = c.hub.svc.SubmitAnswer(c.roomCode, c.playerID, p)

	case msgUseExtra:
		var p UseExtraPayload
		if jsonErr := json.Unmarshal(msg.Payload, &p); jsonErr != nil {
			c.sendError("bad payload")
			return
		}
		// The outcome reaches the buyer through the extra_result event.
		_, err = c.hub.svc.UseExtra(c.roomCode, c.playerID, p)

	case msgReviewNext:
		err = c.hub.svc.ReviewNext(c.roomCode, c.playerID)

	case msgFinishReview:
		err = c.hub.svc.FinishReview(c.roomCode, c.playerID)

	case msgTiebreakAnswer:
		var p TiebreakAnswerPayload
		if jsonErr := json.Unmarshal(msg.Payload, &p); jsonErr != nil {
			c.sendError("bad payload")
			return
		}
		err = c.hub.svc.SubmitTiebreakGuess(c.roomCode, c.playerID, p.Guess)

	default:
		c.sendError("unknown message type")
		return
	}

	if err != nil {
		c.hub.log.Info("ws action rejected",
			zap.String("room", c.roomCode),
			zap.String("player_id", c.playerID),
			zap.String("type", msg.Type),
			zap.Error(err),
		)
		if !errors.Is(err, game.ErrAlreadyAnswered) {
			c.sendError(err.Error())
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.log.Warn("ws write failed",
					zap.String("room", c.roomCode),
					zap.String("player_id", c.playerID),
					zap.Error(err),
				)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
