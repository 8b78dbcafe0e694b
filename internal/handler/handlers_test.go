package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Paulagot/quizroom/internal/game"
	"github.com/Paulagot/quizroom/internal/service"
	"github.com/Paulagot/quizroom/internal/storage"
	"github.com/Paulagot/quizroom/internal/ws"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAdminToken = "secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	qs := storage.NewMemoryQuestionStore()
	hub := ws.NewHub(zap.NewNop())
	orc := game.NewOrchestrator(game.NewRoomManager(), qs, hub, zap.NewNop(), game.Config{})
	svc := service.NewGameService(orc, service.Config{})
	hub.SetService(svc)

	return NewRouter(svc, service.NewAdminService(qs), hub, testAdminToken, zap.NewNop())
}

func TestPostRooms_CreatesRoomWithDefaults(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/rooms", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp["code"], 4)
}

func TestPostRooms_ExplicitRounds(t *testing.T) {
	router := newTestRouter(t)

	body := strings.NewReader(`{"rounds":[{"type":"wipeout","config":{"questionCount":4}}]}`)
	req := httptest.NewRequest(http.MethodPost, "/rooms", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	req = httptest.NewRequest(http.MethodGet, "/rooms/"+resp["code"], nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var snap game.RoomSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.Equal(t, 1, snap.TotalRounds)
	require.Equal(t, game.PhaseWaiting, snap.Phase)
}

func TestGetRoom_NotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/rooms/ZZZZ", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminQuestions_RequiresToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/questions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/questions", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminQuestions_CreateListToggle(t *testing.T) {
	router := newTestRouter(t)

	body := strings.NewReader(`{
		"type": "general_trivia",
		"text": "Capital of Japan?",
		"options": ["Tokyo", "Kyoto", "Osaka", "Nagoya"],
		"answer": "Tokyo",
		"category": "geography",
		"difficulty": "easy",
		"isActive": true
	}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/questions", body)
	req.Header.Set("Authorization", "Bearer "+testAdminToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var row storage.QuestionRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &row))
	require.NotEmpty(t, row.ID)
	require.Equal(t, "Tokyo", row.Answer)

	req = httptest.NewRequest(http.MethodGet, "/admin/questions", nil)
	req.Header.Set("Authorization", "Bearer "+testAdminToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []storage.QuestionRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)

	req = httptest.NewRequest(http.MethodPatch, "/admin/questions/"+row.ID, strings.NewReader(`{"isActive":false}`))
	req.Header.Set("Authorization", "Bearer "+testAdminToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &row))
	require.False(t, row.IsActive)
}

func TestAdminQuestions_InvalidPayload(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/questions", strings.NewReader(`{"type":"general_trivia","text":"No answer"}`))
	req.Header.Set("Authorization", "Bearer "+testAdminToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
