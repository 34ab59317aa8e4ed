package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beadloom/infrastructure/config"
	"beadloom/infrastructure/di"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		ServerAddress: ":0",
		Environment:   "development",
		ArchivePath:   filepath.Join(t.TempDir(), "test.db"),
		LogLevel:      "info",
		EnableMetrics: true,
		EnableCORS:    true,
	}

	container, err := di.InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	router := NewRouter(container.CommandBus, container.QueryBus, container.Hub,
		container.Metrics, cfg, container.Logger)
	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, json.RawMessage) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return resp, nil
	}
	return resp, env.Data
}

func createMatch(t *testing.T, base string) string {
	t.Helper()
	resp, data := doJSON(t, http.MethodPost, base+"/api/v1/match", map[string]string{})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var state struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &state))
	require.Len(t, state.ID, 8)
	return state.ID
}

func joinMatch(t *testing.T, base, matchID, handle string) string {
	t.Helper()
	resp, data := doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/api/v1/match/%s/join", base, matchID),
		map[string]string{"handle": handle})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res struct {
		Player struct {
			ID string `json:"id"`
		} `json:"player"`
	}
	require.NoError(t, json.Unmarshal(data, &res))
	require.NotEmpty(t, res.Player.ID)
	return res.Player.ID
}

func castBody(moveID, playerID, beadID, title, content string) map[string]interface{} {
	return map[string]interface{}{
		"id":        moveID,
		"playerId":  playerID,
		"type":      "cast",
		"timestamp": 1000,
		"payload": map[string]interface{}{
			"bead": map[string]interface{}{
				"id":         beadID,
				"title":      title,
				"content":    content,
				"modality":   "text",
				"complexity": 1,
			},
		},
	}
}

func TestMatchLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	matchID := createMatch(t, srv.URL)

	p1 := joinMatch(t, srv.URL, matchID, "Ada")
	joinMatch(t, srv.URL, matchID, "Blaise")

	// third seat is refused
	resp, _ := doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/api/v1/match/%s/join", srv.URL, matchID),
		map[string]string{"handle": "Carl"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// first player casts
	resp, data := doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/api/v1/match/%s/move", srv.URL, matchID),
		castBody("mv1", p1, "b1", "Fugue", "A figure enters alone."))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var state struct {
		Beads           map[string]json.RawMessage `json:"beads"`
		CurrentPlayerID string                     `json:"currentPlayerId"`
	}
	require.NoError(t, json.Unmarshal(data, &state))
	assert.Len(t, state.Beads, 1)
	assert.NotEqual(t, p1, state.CurrentPlayerID)

	// out-of-turn cast is rejected
	resp, _ = doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/api/v1/match/%s/move", srv.URL, matchID),
		castBody("mv2", p1, "b2", "", "Another figure."))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJudgeRecordsStandings(t *testing.T) {
	srv := newTestServer(t)
	matchID := createMatch(t, srv.URL)
	p1 := joinMatch(t, srv.URL, matchID, "Ada")
	joinMatch(t, srv.URL, matchID, "Blaise")

	resp, _ := doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/api/v1/match/%s/move", srv.URL, matchID),
		castBody("mv1", p1, "b1", "Fugue", "A figure enters alone."))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, data := doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/api/v1/match/%s/judge", srv.URL, matchID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var scroll struct {
		Winner string `json:"winner"`
	}
	require.NoError(t, json.Unmarshal(data, &scroll))
	assert.Equal(t, p1, scroll.Winner)

	resp, data = doJSON(t, http.MethodGet, srv.URL+"/api/v1/ratings", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var standings []struct {
		Handle string `json:"handle"`
		Wins   int    `json:"wins"`
	}
	require.NoError(t, json.Unmarshal(data, &standings))
	require.Len(t, standings, 2)
	assert.Equal(t, "Ada", standings[0].Handle)
	assert.Equal(t, 1, standings[0].Wins)
}

func TestLogAndExportCarryAttachmentHeaders(t *testing.T) {
	srv := newTestServer(t)
	matchID := createMatch(t, srv.URL)

	for _, path := range []string{"log", "export"} {
		resp, err := http.Get(fmt.Sprintf("%s/api/v1/match/%s/%s", srv.URL, matchID, path))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Disposition"),
			fmt.Sprintf("match-%s.json", matchID))
	}
}

func TestDrawTwistOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	matchID := createMatch(t, srv.URL)

	resp, data := doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/api/v1/match/%s/twist", srv.URL, matchID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res struct {
		Twist struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"twist"`
	}
	require.NoError(t, json.Unmarshal(data, &res))
	assert.NotEmpty(t, res.Twist.ID)
}

func TestConcordWithoutPath(t *testing.T) {
	srv := newTestServer(t)
	matchID := createMatch(t, srv.URL)

	resp, _ := doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/api/v1/match/%s/concord", srv.URL, matchID), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUnknownMatchIs404(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/v1/match/ghost")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/health", "/ready", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestInsightsOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	matchID := createMatch(t, srv.URL)
	p1 := joinMatch(t, srv.URL, matchID, "Ada")
	joinMatch(t, srv.URL, matchID, "Blaise")

	resp, _ := doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/api/v1/match/%s/move", srv.URL, matchID),
		castBody("mv1", p1, "b1", "Fugue", "A figure enters alone."))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, data := doJSON(t, http.MethodGet,
		fmt.Sprintf("%s/api/v1/match/%s/insights", srv.URL, matchID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var insights struct {
		MatchID string             `json:"matchId"`
		Lift    map[string]float64 `json:"lift"`
	}
	require.NoError(t, json.Unmarshal(data, &insights))
	assert.Equal(t, matchID, insights.MatchID)
	assert.Contains(t, insights.Lift, "b1")
}
