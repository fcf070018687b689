package handler

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"hailsim/internal/dispatch"
	"hailsim/internal/domain"
	"hailsim/internal/location"
)

// DriverHandler handles HTTP requests for the driver-side session.
type DriverHandler struct {
	sim      *dispatch.Simulator
	locator  location.Provider
	fallback domain.Region
	streams  *eventStreams
	logger   *slog.Logger
}

// NewDriverHandler creates a new DriverHandler and wires the simulator's
// listener into the websocket broadcast.
func NewDriverHandler(sim *dispatch.Simulator, locator location.Provider, fallback domain.Region, logger *slog.Logger) *DriverHandler {
	h := &DriverHandler{
		sim:      sim,
		locator:  locator,
		fallback: fallback,
		streams:  newEventStreams(logger),
		logger:   logger,
	}
	sim.SetListener(h.streams.broadcast)
	return h
}

// OnlineRequest optionally carries the driver's position. Without one the
// device locator is consulted, falling back to the default region.
type OnlineRequest struct {
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// RequestActionRequest identifies a pending request to act on.
type RequestActionRequest struct {
	ID string `json:"id"`
}

// Online starts a driver session.
func (h *DriverHandler) Online(c *gin.Context) {
	var req OnlineRequest
	_ = c.ShouldBindJSON(&req)

	coords := domain.Coordinates{Latitude: req.Latitude, Longitude: req.Longitude}
	if coords.IsZero() {
		coords = location.Resolve(c.Request.Context(), h.locator, h.fallback)
	}

	if err := h.sim.GoOnline(coords); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, h.sim.Snapshot())
}

// Offline ends the driver session.
func (h *DriverHandler) Offline(c *gin.Context) {
	if err := h.sim.GoOffline(); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, h.sim.Snapshot())
}

// Accept accepts one pending ride request.
func (h *DriverHandler) Accept(c *gin.Context) {
	var req RequestActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, dispatch.ErrRequestNotFound)
		return
	}
	if err := h.sim.Accept(req.ID); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, h.sim.Snapshot())
}

// Reject declines one pending ride request.
func (h *DriverHandler) Reject(c *gin.Context) {
	var req RequestActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, dispatch.ErrRequestNotFound)
		return
	}
	if err := h.sim.Reject(req.ID); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, h.sim.Snapshot())
}

// Get returns the driver session snapshot.
func (h *DriverHandler) Get(c *gin.Context) {
	respondJSON(c, http.StatusOK, h.sim.Snapshot())
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Events upgrades to a websocket and streams simulator events. The first
// frame is the current snapshot so a reconnecting client resyncs.
func (h *DriverHandler) Events(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	sess := h.streams.add(conn)
	defer h.streams.remove(sess)

	if err := sess.send(h.sim.Snapshot()); err != nil {
		return
	}

	// Reads are discarded; the connection closes when the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// wsSession serializes writes to one websocket connection.
type wsSession struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *wsSession) send(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

// eventStreams fans simulator events out to every connected websocket.
type eventStreams struct {
	mu       sync.RWMutex
	sessions map[*wsSession]struct{}
	logger   *slog.Logger
}

func newEventStreams(logger *slog.Logger) *eventStreams {
	return &eventStreams{
		sessions: make(map[*wsSession]struct{}),
		logger:   logger,
	}
}

func (e *eventStreams) add(conn *websocket.Conn) *wsSession {
	sess := &wsSession{conn: conn}
	e.mu.Lock()
	e.sessions[sess] = struct{}{}
	e.mu.Unlock()
	return sess
}

func (e *eventStreams) remove(sess *wsSession) {
	e.mu.Lock()
	delete(e.sessions, sess)
	e.mu.Unlock()
	sess.conn.Close()
}

func (e *eventStreams) broadcast(ev dispatch.Event) {
	e.mu.RLock()
	sessions := make([]*wsSession, 0, len(e.sessions))
	for s := range e.sessions {
		sessions = append(sessions, s)
	}
	e.mu.RUnlock()

	for _, s := range sessions {
		if err := s.send(ev); err != nil {
			e.logger.Warn("dropping event stream", "error", err)
			e.remove(s)
		}
	}
}
