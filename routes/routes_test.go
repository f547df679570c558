package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-results/brackets"
	"github.com/Dosada05/tournament-results/handlers"
	"github.com/Dosada05/tournament-results/models"
	"github.com/Dosada05/tournament-results/repositories/repotest"
	"github.com/Dosada05/tournament-results/services"
	"github.com/Dosada05/tournament-results/storage"
	"github.com/Dosada05/tournament-results/utils"
)

const adminPassword = "correct-horse"

type testApp struct {
	server    *httptest.Server
	hub       *brackets.Hub
	reportDir string
	token     string
}

func newTestApp(t *testing.T, mode models.ScoringMode) *testApp {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hash, err := utils.HashPassword(adminPassword)
	require.NoError(t, err)

	hub := brackets.NewHub(logger)
	go hub.Run()
	t.Cleanup(hub.Stop)

	store := repotest.NewMemoryStore()
	reportDir := t.TempDir()
	resolver := brackets.NewResolver(models.DefaultPointsAward)

	authService := services.NewAuthService("admin", hash, "test-secret-key-0123456789")
	reportService := services.NewReportService(store.Teams(), store.Matches(), resolver, mode, "index.md",
		[]storage.FileUploader{storage.NewLocalFileUploader(reportDir)}, logger)

	router := chi.NewRouter()
	SetupRoutes(router, Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Team:     handlers.NewTeamHandler(services.NewTeamService(store.Teams(), logger)),
		Match:    handlers.NewMatchHandler(services.NewMatchService(store.Matches(), hub, logger)),
		Schedule: handlers.NewScheduleHandler(services.NewScheduleService(store.Teams(), store.Matches(), 100, models.RoundRobinSettings{}, logger)),
		Sport: handlers.NewSportHandler(
			services.NewSportService(store.Matches(), resolver, logger),
			services.NewBracketService(store.Matches(), brackets.NewSingleEliminationGenerator(), resolver, hub, logger),
		),
		Standings: handlers.NewStandingsHandler(
			services.NewStandingsService(store.Teams(), store.Matches(), resolver, mode, reportService, hub, nil, logger),
			reportService,
		),
		WebSocket: handlers.NewWebSocketHandler(hub, []string{"*"}, logger),
	}, Options{
		AllowedOrigins: []string{"*"},
		TokenParser:    authService,
		Logger:         logger,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &testApp{server: server, hub: hub, reportDir: reportDir}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}, authorized bool) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	}
	return resp.StatusCode, decoded
}

func (a *testApp) login(t *testing.T) {
	t.Helper()
	status, body := a.do(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": adminPassword}, false)
	require.Equal(t, http.StatusOK, status)
	a.token = body["token"].(string)
}

func (a *testApp) score(t *testing.T, id float64, scoreA, scoreB int) {
	t.Helper()
	status, _ := a.do(t, http.MethodPatch, fmt.Sprintf("/api/matches/%d/score", int(id)),
		map[string]int{"score_a": scoreA, "score_b": scoreB}, true)
	require.Equal(t, http.StatusOK, status)
}

func matchIDs(t *testing.T, body map[string]interface{}) []float64 {
	t.Helper()
	raw, ok := body["matches"].([]interface{})
	require.True(t, ok)
	ids := make([]float64, 0, len(raw))
	for _, m := range raw {
		ids = append(ids, m.(map[string]interface{})["id"].(float64))
	}
	return ids
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t, models.ScoringBracket)
	resp, err := app.server.Client().Get(app.server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	app := newTestApp(t, models.ScoringBracket)

	status, body := app.do(t, http.MethodPost, "/api/teams", map[string]string{"name": "Owls"}, false)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.NotEmpty(t, body["error"])

	app.token = "forged"
	status, _ = app.do(t, http.MethodPost, "/api/standings/rebuild", nil, true)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = app.do(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "wrong"}, false)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = app.do(t, http.MethodGet, "/api/teams", nil, false)
	assert.Equal(t, http.StatusOK, status)
}

func TestBracketTournamentFlow(t *testing.T) {
	app := newTestApp(t, models.ScoringBracket)
	app.login(t)

	for _, name := range []string{"A", "B", "C", "D"} {
		status, _ := app.do(t, http.MethodPost, "/api/teams", map[string]string{"name": name}, true)
		require.Equal(t, http.StatusCreated, status)
	}
	status, _ := app.do(t, http.MethodPost, "/api/teams", map[string]string{"name": "A"}, true)
	assert.Equal(t, http.StatusConflict, status)

	status, body := app.do(t, http.MethodGet, "/api/teams/C", nil, false)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "C", body["team"].(map[string]interface{})["name"])

	status, _ = app.do(t, http.MethodGet, "/api/teams/Nobody", nil, false)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = app.do(t, http.MethodPost, "/api/sports/Chess/bracket", map[string][]string{"seeds": {"A", "C", "D", "B"}}, true)
	require.Equal(t, http.StatusCreated, status)
	semis := matchIDs(t, body)
	require.Len(t, semis, 2)

	status, _ = app.do(t, http.MethodPost, "/api/sports/Chess/bracket/advance", nil, true)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	app.score(t, semis[0], 2, 0)
	app.score(t, semis[1], 3, 1)

	status, body = app.do(t, http.MethodPost, "/api/sports/Chess/bracket/advance", nil, true)
	require.Equal(t, http.StatusCreated, status)
	finals := matchIDs(t, body)
	require.Len(t, finals, 2)

	status, body = app.do(t, http.MethodGet, "/api/sports/Chess/placement", nil, false)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["complete"])

	app.score(t, finals[0], 1, 0)
	app.score(t, finals[1], 0, 2)

	status, body = app.do(t, http.MethodGet, "/api/sports/Chess/placement", nil, false)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["complete"])
	assert.Equal(t, map[string]interface{}{"A": 3.0, "C": 2.0, "D": 1.0, "B": 0.0}, body["points"])

	status, body = app.do(t, http.MethodPost, "/api/standings/rebuild", nil, true)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["publish_error"])
	standings := body["standings"].([]interface{})
	require.Len(t, standings, 4)
	leader := standings[0].(map[string]interface{})
	assert.Equal(t, "A", leader["team"])
	assert.Equal(t, 3.0, leader["points"])

	// A second rebuild over the same matches leaves the totals unchanged.
	status, _ = app.do(t, http.MethodPost, "/api/standings/rebuild", nil, true)
	require.Equal(t, http.StatusOK, status)
	status, body = app.do(t, http.MethodGet, "/api/teams", nil, false)
	require.Equal(t, http.StatusOK, status)
	for _, raw := range body["teams"].([]interface{}) {
		team := raw.(map[string]interface{})
		if team["name"] == "A" {
			assert.Equal(t, 3.0, team["points"])
		}
	}

	report, err := os.ReadFile(filepath.Join(app.reportDir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(report), "1st **A** · 2nd C · 3rd D · 4th B")

	resp, err := app.server.Client().Get(app.server.URL + "/api/report")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/markdown"))

	status, body = app.do(t, http.MethodGet, "/api/sports", nil, false)
	require.Equal(t, http.StatusOK, status)
	sports := body["sports"].([]interface{})
	require.Len(t, sports, 1)
	assert.Equal(t, true, sports[0].(map[string]interface{})["bracket_complete"])
}

func TestRebuildRejectsTiedBracket(t *testing.T) {
	app := newTestApp(t, models.ScoringBracket)
	app.login(t)

	status, body := app.do(t, http.MethodPost, "/api/sports/Chess/bracket", map[string][]string{"seeds": {"A", "B", "C", "D"}}, true)
	require.Equal(t, http.StatusCreated, status)
	semis := matchIDs(t, body)
	app.score(t, semis[0], 1, 0)
	app.score(t, semis[1], 1, 0)

	status, body = app.do(t, http.MethodPost, "/api/sports/Chess/bracket/advance", nil, true)
	require.Equal(t, http.StatusCreated, status)
	finals := matchIDs(t, body)
	app.score(t, finals[0], 2, 2)
	app.score(t, finals[1], 1, 0)

	status, _ = app.do(t, http.MethodPost, "/api/standings/rebuild", nil, true)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = app.do(t, http.MethodGet, "/api/sports/Chess/placement", nil, false)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestMatchRoutes(t *testing.T) {
	app := newTestApp(t, models.ScoringRoundRobin)
	app.login(t)

	status, body := app.do(t, http.MethodPost, "/api/matches", map[string]string{
		"participant_a": "A", "participant_b": "B", "sport": "Chess",
	}, true)
	require.Equal(t, http.StatusCreated, status)
	id := body["match"].(map[string]interface{})["id"].(float64)

	status, _ = app.do(t, http.MethodPost, "/api/matches", map[string]string{
		"participant_a": "A", "participant_b": "A", "sport": "Chess",
	}, true)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = app.do(t, http.MethodPatch, fmt.Sprintf("/api/matches/%d/status", int(id)), map[string]string{"status": "ongoing"}, true)
	assert.Equal(t, http.StatusOK, status)

	status, body = app.do(t, http.MethodGet, "/api/matches?unfinished=true", nil, false)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["matches"], 1)

	status, _ = app.do(t, http.MethodPatch, fmt.Sprintf("/api/matches/%d/score", int(id)), map[string]int{"score_a": -2, "score_b": 0}, true)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = app.do(t, http.MethodPatch, "/api/matches/777/score", map[string]int{"score_a": 1, "score_b": 0}, true)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = app.do(t, http.MethodPatch, "/api/matches/abc/score", map[string]int{"score_a": 1, "score_b": 0}, true)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = app.do(t, http.MethodGet, "/api/matches?status=finished", nil, false)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["matches"], 0)
}

func TestScheduleRoute(t *testing.T) {
	app := newTestApp(t, models.ScoringRoundRobin)
	app.login(t)

	status, body := app.do(t, http.MethodPost, "/api/schedules", map[string]interface{}{
		"teams": 4, "games_per_participant": 2, "seed": 5,
	}, true)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["pairings"], 4)

	status, _ = app.do(t, http.MethodPost, "/api/schedules", map[string]interface{}{
		"teams": 3, "games_per_participant": 1,
	}, true)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, body = app.do(t, http.MethodPost, "/api/schedules", map[string]interface{}{
		"teams": 4, "games_per_participant": 2, "seed": 5, "import": true, "sport": "Darts",
	}, true)
	require.Equal(t, http.StatusCreated, status)
	assert.Len(t, body["matches"], 4)
}

func TestStandingsWebSocket(t *testing.T) {
	app := newTestApp(t, models.ScoringRoundRobin)
	app.login(t)

	wsURL := "ws" + strings.TrimPrefix(app.server.URL, "http") + "/ws/standings"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return app.hub.ClientCount(brackets.StandingsRoom) == 1 }, time.Second, 10*time.Millisecond)

	status, _ := app.do(t, http.MethodPost, "/api/standings/rebuild", nil, true)
	require.Equal(t, http.StatusOK, status)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg brackets.WebSocketMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, brackets.MessageStandingsUpdated, msg.Type)
	assert.Equal(t, brackets.StandingsRoom, msg.RoomID)
}

func TestSwaggerDocIsServed(t *testing.T) {
	app := newTestApp(t, models.ScoringBracket)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, app.server.URL+"/swagger/doc.json", nil)
	require.NoError(t, err)
	resp, err := app.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doc map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Contains(t, doc["paths"], "/standings/rebuild")
}
