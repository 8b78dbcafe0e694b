package ws

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/Paulagot/quizroom/internal/service"
	"go.uber.org/zap"
)

// Hub fans outbound events to the websocket clients of each room and
// implements game.Sink: room-wide broadcast, host-only channel, and
// single-player delivery.
type Hub struct {
	svc service.GameService
	log *zap.Logger

	mu            sync.RWMutex
	clientsByRoom map[string]map[string]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMessage
}

type roomMessage struct {
	roomCode string
	data     []byte
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hub{
		log:           log,
		clientsByRoom: make(map[string]map[string]*Client),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		broadcast:     make(chan roomMessage, 256),
	}
	go h.run()
	return h
}

// SetService breaks the hub/service construction cycle: the hub is a
// sink for the engine, and the engine's service is the hub's backend.
func (h *Hub) SetService(svc service.GameService) { h.svc = svc }

func (h *Hub) ToRoom(code string, event string, payload any) {
	b, err := json.Marshal(Envelope{Type: event, Payload: payload})
	if err != nil {
		h.log.Error("ws broadcast marshal failed", zap.String("event", event), zap.Error(err))
		return
	}
	h.broadcast <- roomMessage{roomCode: strings.ToUpper(code), data: b}
}

func (h *Hub) ToHost(code string, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clientsByRoom[strings.ToUpper(code)] {
		if c.isHost {
			c.sendJSON(Envelope{Type: event, Payload: payload})
			return
		}
	}
}

func (h *Hub) ToPlayer(code string, playerID string, event string, payload any) {
	h.mu.RLock()
	c, ok := h.clientsByRoom[strings.ToUpper(code)][playerID]
	h.mu.RUnlock()
	if ok {
		c.sendJSON(Envelope{Type: event, Payload: payload})
	}
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			roomCode := strings.ToUpper(c.roomCode)
			if _, ok := h.clientsByRoom[roomCode]; !ok {
				h.clientsByRoom[roomCode] = make(map[string]*Client)
			}
			h.clientsByRoom[roomCode][c.playerID] = c
			h.mu.Unlock()

			h.log.Info("ws client registered",
				zap.String("room", roomCode),
				zap.String("player_id", c.playerID),
			)

		case c := <-h.unregister:
			h.removeClient(c)

		case msg := <-h.broadcast:
			h.mu.RLock()
			roomClients := h.clientsByRoom[msg.roomCode]
			stale := make([]*Client, 0)
			for _, c := range roomClients {
				select {
				case c.send <- msg.data:
				default:
					stale = append(stale, c)
				}
			}
			h.mu.RUnlock()
			for _, c := range stale {
				h.removeClient(c)
			}
		}
	}
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	roomCode := strings.ToUpper(c.roomCode)
	if roomClients, ok := h.clientsByRoom[roomCode]; ok {
		if current, exists := roomClients[c.playerID]; exists && current == c {
			delete(roomClients, c.playerID)
			close(c.send)
		}
		if len(roomClients) == 0 {
			delete(h.clientsByRoom, roomCode)
		}
	}
	h.mu.Unlock()

	h.log.Info("ws client unregistered",
		zap.String("room", roomCode),
		zap.String("player_id", c.playerID),
	)
}
