package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"beadloom/application/ports"
	"beadloom/domain/core/aggregates"
	"beadloom/domain/core/entities"
	"beadloom/infrastructure/persistence/memory"
	"beadloom/pkg/observability"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	store := memory.NewMatchRepository(metrics, logger)

	match, err := aggregates.NewMatch("w1", entities.SampleSeeds(), 1000)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), match))

	hub := NewHub(store, metrics, logger)

	r := chi.NewRouter()
	r.Get("/ws/{matchId}", hub.HandleSubscribe)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, matchID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + matchID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame Frame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestSubscribeSendsInitialState(t *testing.T) {
	_, srv := newTestHub(t)
	conn := dial(t, srv, "w1")

	frame := readFrame(t, conn)
	assert.Equal(t, ports.FrameStateUpdate, frame.Type)

	state, ok := frame.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "w1", state["id"])
}

func TestSubscribeUnknownMatchRefused(t *testing.T) {
	_, srv := newTestHub(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/ghost"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHelloRepliesWithState(t *testing.T) {
	_, srv := newTestHub(t)
	conn := dial(t, srv, "w1")
	readFrame(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "hello"}))
	frame := readFrame(t, conn)
	assert.Equal(t, ports.FrameStateUpdate, frame.Type)
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	hub, srv := newTestHub(t)
	a := dial(t, srv, "w1")
	b := dial(t, srv, "w1")
	readFrame(t, a)
	readFrame(t, b)

	require.Eventually(t, func() bool { return hub.Subscribers("w1") == 2 },
		time.Second, 10*time.Millisecond)

	hub.Publish("w1", ports.FrameMoveAccepted, map[string]string{"moveId": "mv1"})

	for _, conn := range []*websocket.Conn{a, b} {
		frame := readFrame(t, conn)
		assert.Equal(t, ports.FrameMoveAccepted, frame.Type)
	}
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	hub, _ := newTestHub(t)
	hub.Publish("w1", ports.FrameStateUpdate, nil)
	assert.Equal(t, 0, hub.Subscribers("w1"))
}

func TestDisconnectPrunesSubscriber(t *testing.T) {
	hub, srv := newTestHub(t)
	conn := dial(t, srv, "w1")
	readFrame(t, conn)

	require.Eventually(t, func() bool { return hub.Subscribers("w1") == 1 },
		time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers("w1") == 0 },
		time.Second, 10*time.Millisecond)
}
