// Package feed streams live gem duel events to spectators over WebSockets.
// A Hub implements gems.Publisher: every step, turn and snapshot the game
// publishes is encoded as JSON and fanned out to the connected sessions.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"

	"github.com/vovakirdan/gemduel/internal/match3"
	"github.com/vovakirdan/gemduel/internal/multiplayer"
)

const (
	writeWait       = 5 * time.Second
	eventBufferSize = 256
)

// Message is the JSON envelope written to spectators.
type Message struct {
	Kind  multiplayer.EventKind `json:"kind"`
	Match multiplayer.MatchID   `json:"match"`
	Data  json.RawMessage       `json:"data"`
}

// Hub fans game events out to spectator sessions.
type Hub struct {
	logger   *log.Logger
	sessions *multiplayer.SessionRegistry
	upgrader websocket.Upgrader
	router   *way.Router

	// mu orders publishing against joining, so a new session sees the
	// latest snapshot followed by every later event.
	mu   sync.RWMutex
	last *Message // latest snapshot

	server *http.Server
}

// NewHub creates a hub. A nil logger discards log output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := &Hub{
		logger:   logger,
		sessions: multiplayer.NewSessionRegistry(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	h.routes()
	return h
}

func (h *Hub) routes() {
	h.router = way.NewRouter()
	h.router.HandleFunc("GET", "/feed", h.handleFeed)
	h.router.HandleFunc("GET", "/snapshot", h.handleSnapshot)
	h.router.HandleFunc("GET", "/status", h.handleStatus)
}

// Handler returns the HTTP handler serving the feed.
func (h *Hub) Handler() http.Handler {
	return h.router
}

// Spectators returns the number of connected sessions.
func (h *Hub) Spectators() int {
	return h.sessions.Count()
}

// Start listens on addr and serves the feed in the background. It returns
// the bound address, which differs from addr when addr uses port 0.
func (h *Hub) Start(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", err
	}
	h.server = &http.Server{
		Handler:           h.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("Feed server stopped", "error", err)
		}
	}()

	h.logger.Info("Serving spectator feed", "addr", ln.Addr().String())
	return ln.Addr().String(), nil
}

// Shutdown stops the server started by Start and closes every session.
func (h *Hub) Shutdown(ctx context.Context) error {
	var err error
	if h.server != nil {
		err = h.server.Shutdown(ctx)
	}
	h.sessions.Each(func(s multiplayer.SessionHandle) {
		if cs, ok := s.(*multiplayer.ChannelSession); ok {
			cs.Close()
		}
	})
	return err
}

// PublishStep forwards one resolution step.
func (h *Hub) PublishStep(match multiplayer.MatchID, s match3.Step) {
	h.publish(multiplayer.EventStep, match, s, false)
}

// PublishTurn forwards the outcome of a move.
func (h *Hub) PublishTurn(match multiplayer.MatchID, out match3.TurnOutcome) {
	// Steps were already sent one by one.
	out.Steps = nil
	h.publish(multiplayer.EventTurn, match, out, false)
}

// PublishSnapshot forwards the session state and keeps it for late joiners.
func (h *Hub) PublishSnapshot(match multiplayer.MatchID, snap match3.Snapshot) {
	h.publish(multiplayer.EventSnapshot, match, snap, true)
}

func (h *Hub) publish(kind multiplayer.EventKind, match multiplayer.MatchID, v any, keep bool) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("Cannot encode event", "kind", kind, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions.Broadcast(multiplayer.Event{Kind: kind, Match: match, Data: data})
	if keep {
		h.last = &Message{Kind: kind, Match: match, Data: data}
	}
}

// latest returns the last snapshot, or nil before the first one.
func (h *Hub) latest() *Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last
}

// join queues the latest snapshot for session and registers it for the
// events published after that snapshot.
func (h *Hub) join(session *multiplayer.ChannelSession) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last != nil {
		session.Send(multiplayer.Event{Kind: h.last.Kind, Match: h.last.Match, Data: h.last.Data})
	}
	h.sessions.Register(session)
}

func (h *Hub) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	session := multiplayer.NewChannelSession(multiplayer.NewSessionID(), eventBufferSize)
	h.join(session)
	h.logger.Info("Spectator connected", "session", session.ID(), "remote", r.RemoteAddr)

	go h.writeLoop(conn, session)

	// Spectators do not talk; reading only notices when they leave.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	session.Close()
	h.sessions.Unregister(session.ID())
	h.logger.Info("Spectator disconnected", "session", session.ID(), "dropped", session.Dropped())
}

func (h *Hub) writeLoop(conn *websocket.Conn, session *multiplayer.ChannelSession) {
	defer conn.Close()

	for {
		select {
		case <-session.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case evt := <-session.Events():
			msg := Message{Kind: evt.Kind, Match: evt.Match, Data: evt.Data}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				session.Close()
				return
			}
		}
	}
}

func (h *Hub) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	last := h.latest()
	if last == nil {
		http.Error(w, "no game in progress", http.StatusNotFound)
		return
	}
	writeJSON(w, last)
}

func (h *Hub) handleStatus(w http.ResponseWriter, _ *http.Request) {
	status := struct {
		Spectators int                 `json:"spectators"`
		Match      multiplayer.MatchID `json:"match,omitempty"`
	}{Spectators: h.Spectators()}
	if last := h.latest(); last != nil {
		status.Match = last.Match
	}
	writeJSON(w, status)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
