package game

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
	"sync"
)

// RoomManager is the cross-room registry: the only structure shared
// between rooms. Lifecycle policy (when an empty room dies) lives here,
// not in the engine.
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRoomManager() *RoomManager {
	return &RoomManager{rooms: make(map[string]*Room)}
}

func (rm *RoomManager) CreateRoom(rounds []RoundDefinition) *Room {
	code := rm.generateCode(4)
	room := newRoom(code, rounds)

	rm.mu.Lock()
	rm.rooms[code] = room
	rm.mu.Unlock()

	return room
}

func (rm *RoomManager) GetRoom(code string) (*Room, bool) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	r, ok := rm.rooms[strings.ToUpper(code)]
	return r, ok
}

func (rm *RoomManager) DeleteRoom(code string) {
	rm.mu.Lock()
	room, ok := rm.rooms[strings.ToUpper(code)]
	delete(rm.rooms, strings.ToUpper(code))
	rm.mu.Unlock()

	if ok {
		room.release()
	}
}

func (rm *RoomManager) generateCode(n int) string {
	for {
		b := make([]byte, 8)
		_, _ = rand.Read(b)

		s := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(b)
		s = strings.NewReplacer("O", "A", "I", "B", "0", "C", "1", "D").Replace(s)
		code := strings.ToUpper(s[:n])

		rm.mu.RLock()
		_, taken := rm.rooms[code]
		rm.mu.RUnlock()
		if !taken {
			return code
		}
	}
}
