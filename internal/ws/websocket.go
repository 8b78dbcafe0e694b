package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the connection, expects a join_room message, and
// registers the player with the room. A supplied playerId reconnects an
// existing ledger; otherwise a fresh id is minted.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, roomCode string) {
	if _, ok := h.svc.GetRoom(roomCode); !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	_ = conn.SetReadDeadline(time.Now().Add(15 * time.Second))
	var msg clientMsg
	if err := conn.ReadJSON(&msg); err != nil || msg.Type != msgJoinRoom {
		_ = conn.WriteJSON(Envelope{Type: "error", Payload: map[string]string{"message": "expected join_room"}})
		_ = conn.Close()
		return
	}

	var jp JoinPayload
	if err := json.Unmarshal(msg.Payload, &jp); err != nil || strings.TrimSpace(jp.Name) == "" {
		_ = conn.WriteJSON(Envelope{Type: "error", Payload: map[string]string{"message": "invalid name"}})
		_ = conn.Close()
		return
	}
	_ = conn.SetReadDeadline(time.Time{})

	playerID := strings.TrimSpace(jp.PlayerID)
	if playerID == "" {
		playerID = uuid.NewString()
	}

	client := &Client{
		hub:      h,
		roomCode: strings.ToUpper(roomCode),
		playerID: playerID,
		conn:     conn,
		send:     make(chan []byte, 64),
		limiter:  rate.NewLimiter(rate.Limit(actionRate), actionBurst),
	}

	isHost, err := h.svc.Join(client.roomCode, playerID, strings.TrimSpace(jp.Name))
	if err != nil {
		_ = conn.WriteJSON(Envelope{Type: "error", Payload: map[string]string{"message": err.Error()}})
		_ = conn.Close()
		return
	}
	client.isHost = isHost

	h.register <- client
	go client.writePump()

	client.sendJSON(Envelope{Type: "joined", Payload: map[string]any{
		"playerId": playerID,
		"isHost":   isHost,
	}})
	if room, ok := h.svc.GetRoom(client.roomCode); ok {
		client.sendJSON(Envelope{Type: "room_state", Payload: room.Snapshot()})
	}

	client.readPump()
}
