// Package ws pushes live match frames to connected spectators and players.
package ws

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"beadloom/application/ports"
	"beadloom/pkg/observability"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// Frame is one message pushed to a subscriber.
type Frame struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// sendBuffer caps the per-subscriber queue. A subscriber that falls this
// far behind gets disconnected rather than stalling the match.
const sendBuffer = 32

type subscriber struct {
	conn *websocket.Conn
	send chan Frame
}

// Hub fans match frames out to websocket subscribers, one set per match.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*subscriber]struct{}
	snapshots   ports.MatchRepository
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// NewHub creates a hub that serves initial state from the given store
func NewHub(snapshots ports.MatchRepository, metrics *observability.Metrics, logger *zap.Logger) *Hub {
	return &Hub{
		subscribers: make(map[string]map[*subscriber]struct{}),
		snapshots:   snapshots,
		metrics:     metrics,
		logger:      logger,
	}
}

// Publish implements ports.EventPublisher. Slow subscribers are dropped,
// never waited on.
func (h *Hub) Publish(matchID string, frameType string, payload interface{}) {
	frame := Frame{Type: frameType, Payload: payload}

	h.mu.RLock()
	subs := make([]*subscriber, 0, len(h.subscribers[matchID]))
	for sub := range h.subscribers[matchID] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		select {
		case sub.send <- frame:
		default:
			h.metrics.RecordWSFailure()
			h.logger.Warn("dropping slow websocket subscriber", zap.String("matchId", matchID))
			h.remove(matchID, sub)
		}
	}
}

// HandleSubscribe upgrades GET /ws/{matchId} and streams frames until the
// client disconnects. The current board state is sent first.
func (h *Hub) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchId")

	match, err := h.snapshots.GetByID(r.Context(), matchID)
	if err != nil {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	sub := &subscriber{conn: conn, send: make(chan Frame, sendBuffer)}
	h.add(matchID, sub)
	h.logger.Info("websocket subscriber connected", zap.String("matchId", matchID))

	sub.send <- Frame{Type: ports.FrameStateUpdate, Payload: match.Snapshot()}

	go h.writePump(matchID, sub)
	h.readPump(matchID, sub)
}

// Subscribers returns the number of open connections for a match
func (h *Hub) Subscribers(matchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[matchID])
}

func (h *Hub) add(matchID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[matchID] == nil {
		h.subscribers[matchID] = make(map[*subscriber]struct{})
	}
	h.subscribers[matchID][sub] = struct{}{}
}

func (h *Hub) remove(matchID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.subscribers[matchID]; ok {
		if _, present := subs[sub]; present {
			delete(subs, sub)
			close(sub.send)
			if len(subs) == 0 {
				delete(h.subscribers, matchID)
			}
		}
	}
}

// writePump drains the send queue onto the socket
func (h *Hub) writePump(matchID string, sub *subscriber) {
	defer sub.conn.Close()
	for frame := range sub.send {
		if err := sub.conn.WriteJSON(frame); err != nil {
			h.metrics.RecordWSFailure()
			h.logger.Debug("websocket write failed", zap.String("matchId", matchID), zap.Error(err))
			h.remove(matchID, sub)
			return
		}
	}
}

// readPump answers hello frames with the current state and otherwise
// ignores inbound traffic; moves arrive over REST.
func (h *Hub) readPump(matchID string, sub *subscriber) {
	defer h.remove(matchID, sub)
	for {
		var msg struct {
			Type string `json:"type"`
		}
		if err := sub.conn.ReadJSON(&msg); err != nil {
			h.logger.Info("websocket subscriber disconnected", zap.String("matchId", matchID))
			return
		}
		if msg.Type == "hello" {
			if match, err := h.snapshots.GetByID(context.Background(), matchID); err == nil {
				select {
				case sub.send <- Frame{Type: ports.FrameStateUpdate, Payload: match.Snapshot()}:
				default:
				}
			}
		}
	}
}
