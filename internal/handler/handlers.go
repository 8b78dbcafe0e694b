package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Paulagot/quizroom/internal/game"
	"github.com/Paulagot/quizroom/internal/service"
	"github.com/Paulagot/quizroom/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type createRoomRequest struct {
	Rounds []game.RoundDefinition `json:"rounds"`
}

// NewRouter builds the HTTP surface: room lifecycle, the websocket
// upgrade, and the token-guarded admin question routes.
func NewRouter(svc service.GameService, admin service.AdminService, hub *ws.Hub, adminToken string, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Post("/rooms", func(w http.ResponseWriter, req *http.Request) {
		var in createRoomRequest
		if req.Body != nil {
			// An empty or absent body falls back to the default rounds.
			_ = json.NewDecoder(req.Body).Decode(&in)
		}
		room := svc.CreateRoom(in.Rounds)
		log.Info("room created", zap.String("code", room.Code))
		writeJSON(w, map[string]string{"code": room.Code})
	})

	r.Get("/rooms/{code}", func(w http.ResponseWriter, req *http.Request) {
		code := chi.URLParam(req, "code")
		room, ok := svc.GetRoom(code)
		if !ok {
			log.Warn("room not found", zap.String("code", code))
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}
		writeJSON(w, room.Snapshot())
	})

	r.Get("/ws/{code}", func(w http.ResponseWriter, req *http.Request) {
		code := chi.URLParam(req, "code")
		log.Info("ws connect attempt", zap.String("code", code))
		hub.ServeWS(w, req, code)
	})

	registerAdminRoutes(r, admin, adminToken, log)
	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
