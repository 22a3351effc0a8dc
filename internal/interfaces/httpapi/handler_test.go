package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/hucklog/ultimate-stats/internal/domain/team"
	"github.com/hucklog/ultimate-stats/internal/infrastructure/repository/memory"
	"github.com/hucklog/ultimate-stats/internal/usecase"
)

const testJobToken = "job-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	gameRepo := memory.NewGameRepository()
	teamRepo := memory.NewTeamRepository([]team.Team{
		{ID: "team-1", Name: "Huckers", PlayerIDs: []string{"alice", "bob"}},
		{ID: "team-2", Name: "Breakers", PlayerIDs: []string{"xavier"}},
	})
	playerRepo := memory.NewPlayerStatsRepository()
	teamStatsRepo := memory.NewTeamStatsRepository()
	connRepo := memory.NewConnectionRepository()

	statsService := usecase.NewStatsService(gameRepo, playerRepo, teamStatsRepo, connRepo, nil)
	viewService := usecase.NewStatsViewService(playerRepo, teamStatsRepo, connRepo)
	reconService := usecase.NewReconciliationService(gameRepo, teamRepo, playerRepo, connRepo, nil, nil)
	recomputeService := usecase.NewRecomputeService(gameRepo, playerRepo, nil)

	handler := NewHandler(statsService, viewService, reconService, recomputeService, nil)
	return NewRouter(handler, nil, false, []string{"*"}, testJobToken)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const holdPointBody = `{
	"teamOne": {
		"teamId": "team-1",
		"players": [
			{"playerId": "alice", "name": "Alice", "username": "alice"},
			{"playerId": "bob", "name": "Bob", "username": "bob"}
		]
	},
	"teamTwo": {
		"teamId": "team-2",
		"players": [{"playerId": "xavier", "name": "Xavier", "username": "xavier"}]
	},
	"teamOneActions": [
		{"number": 2, "type": "Catch", "playerOne": "alice"},
		{"number": 3, "type": "TeamOneScore", "playerOne": "bob", "playerTwo": "alice"}
	],
	"teamTwoActions": [{"number": 1, "type": "Pull", "playerOne": "xavier"}],
	"pullingTeamId": "team-2",
	"receivingTeamId": "team-1"
}`

func TestHandler_GameLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/games", `{"id":"game-1","teamOneId":"team-1","teamTwoId":"team-2"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create game: unexpected status %d body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/games", `{"id":"game-1","teamOneId":"team-1","teamTwoId":"team-2"}`, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate game: unexpected status %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/games/game-1/points", holdPointBody, nil)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("ingest point: unexpected status %d body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/games/game-1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get game: unexpected status %d", rec.Code)
	}
	var envelope struct {
		APIVersion string `json:"apiVersion"`
		Data       struct {
			Game struct {
				ID     string `json:"id"`
				Points []struct {
					ScoringTeamID string `json:"scoringTeamId"`
				} `json:"points"`
			} `json:"game"`
			Players []struct {
				PlayerID string `json:"playerId"`
			} `json:"players"`
		} `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if envelope.APIVersion != "2.0" {
		t.Fatalf("unexpected api version: %q", envelope.APIVersion)
	}
	if envelope.Data.Game.ID != "game-1" || len(envelope.Data.Game.Points) != 1 {
		t.Fatalf("unexpected game payload: %+v", envelope.Data.Game)
	}
	if envelope.Data.Game.Points[0].ScoringTeamID != "team-1" {
		t.Fatalf("unexpected scoring team: %q", envelope.Data.Game.Points[0].ScoringTeamID)
	}
	if len(envelope.Data.Players) != 3 {
		t.Fatalf("expected 3 player records, got %d", len(envelope.Data.Players))
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/games/game-1/complete", `{"winningTeamId":"team-1"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete game: unexpected status %d body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/players/bob/stats", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("player stats: unexpected status %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/teams/team-1/games/game-1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("team game stats: unexpected status %d", rec.Code)
	}
}

func TestHandler_IngestPoint_Validation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/games", `{"id":"game-1","teamOneId":"team-1","teamTwoId":"team-2"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create game: unexpected status %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/games/game-1/points", `{"pullingTeamId":"team-2"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing rosters: unexpected status %d", rec.Code)
	}

	badAction := strings.Replace(holdPointBody, `"type": "Pull"`, `"type": "Layout"`, 1)
	rec = doJSON(t, router, http.MethodPost, "/v1/games/game-1/points", badAction, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown action type: unexpected status %d", rec.Code)
	}
}

func TestHandler_GetPlayerStats_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/players/ghost/stats", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}

func TestHandler_Reconciliation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/games", `{"id":"game-1","teamOneId":"team-1","teamTwoId":"team-2"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create game: unexpected status %d", rec.Code)
	}
	guestBody := strings.ReplaceAll(holdPointBody, "bob", "guest-7")
	guestBody = strings.ReplaceAll(guestBody, `"name": "Bob"`, `"name": "Guest"`)
	rec = doJSON(t, router, http.MethodPost, "/v1/games/game-1/points", guestBody, nil)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("ingest point: unexpected status %d body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/reconciliations",
		`{"guestId":"guest-7","playerId":"nina","name":"Nina","username":"nina","teamIds":["team-1","team-2"]}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reconcile: unexpected status %d body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/players/nina/stats", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("nina stats after reconcile: unexpected status %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/v1/players/guest-7/stats", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("guest stats after reconcile: unexpected status %d", rec.Code)
	}
}

func TestHandler_RecomputeJob_TokenGuard(t *testing.T) {
	router := newTestRouter(t)

	body := `{"teamIds":["team-1"]}`
	rec := doJSON(t, router, http.MethodPost, "/v1/internal/jobs/recompute-totals", body, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: unexpected status %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/internal/jobs/recompute-totals", body,
		map[string]string{"X-Internal-Job-Token": testJobToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("with token: unexpected status %d body %s", rec.Code, rec.Body.String())
	}
}
