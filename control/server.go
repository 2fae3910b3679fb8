// Package control exposes a websocket endpoint for toggling render options
// and watching frame status while the viewer runs.
package control

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Status is broadcast to every client on Publish
type Status struct {
	Type        string  `json:"type"`
	Frame       int     `json:"frame"`
	FPS         float64 `json:"fps"`
	Wireframe   bool    `json:"wireframe"`
	Lights      int     `json:"lights"`
	SphereDraws int     `json:"sphereDraws"`
	Rotation    float64 `json:"rotation"`
	Paused      bool    `json:"paused"`
	Speed       float64 `json:"speed"`
}

// Command is a client request
type Command struct {
	Type    string   `json:"type"`
	Enabled *bool    `json:"enabled,omitempty"`
	Speed   *float64 `json:"speed,omitempty"`
	Paused  *bool    `json:"paused,omitempty"`
}

const (
	CmdSetWireframe    = "setWireframe"
	CmdToggleWireframe = "toggleWireframe"
	CmdSetSpeed        = "setSpeed"
	CmdSetPaused       = "setPaused"
)

const (
	// Messages queued per client before Publish starts dropping
	sendBuffer = 16
	writeWait  = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Server holds the render controls shared between the websocket clients
// and the render loop
type Server struct {
	wireframe atomic.Bool
	paused    atomic.Bool
	speed     atomic.Uint64 // float64 bits

	clientsMutex sync.RWMutex
	clients      map[*websocket.Conn]*client

	statusMutex sync.Mutex
	last        Status

	httpServer *http.Server
}

// NewServer creates a control server with the initial wireframe state
func NewServer(wireframe bool) *Server {
	s := &Server{
		clients: make(map[*websocket.Conn]*client),
		last:    Status{Type: "status"},
	}
	s.wireframe.Store(wireframe)
	s.speed.Store(math.Float64bits(1))
	return s
}

// Wireframe returns the current wireframe flag
func (s *Server) Wireframe() bool { return s.wireframe.Load() }

// SetWireframe sets the wireframe flag
func (s *Server) SetWireframe(enabled bool) { s.wireframe.Store(enabled) }

// ToggleWireframe flips the wireframe flag and returns the new value
func (s *Server) ToggleWireframe() bool {
	for {
		old := s.wireframe.Load()
		if s.wireframe.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// SpeedMultiplier returns the requested simulation speed multiplier
func (s *Server) SpeedMultiplier() float64 { return math.Float64frombits(s.speed.Load()) }

// Paused returns whether the simulation should hold still
func (s *Server) Paused() bool { return s.paused.Load() }

// Handler returns the HTTP handler serving /ws
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Start listens on addr and serves in the background
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("control server: %w", err)
	}

	s.httpServer = &http.Server{Handler: s.Handler()}
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Println("Control server error:", err)
		}
	}()

	fmt.Printf("Control server listening on ws://%s/ws\n", listener.Addr())
	return nil
}

// Close stops the HTTP server and drops all clients
func (s *Server) Close(ctx context.Context) error {
	s.clientsMutex.Lock()
	for conn, c := range s.clients {
		conn.Close()
		c.stop()
	}
	s.clients = make(map[*websocket.Conn]*client)
	s.clientsMutex.Unlock()

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// client owns a connection's outgoing queue. Only writePump writes to conn.
type client struct {
	conn *websocket.Conn
	send chan interface{}

	mu     sync.Mutex
	closed bool
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn, send: make(chan interface{}, sendBuffer)}
}

// enqueue queues msg without blocking and reports whether it fit
func (c *client) enqueue(msg interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *client) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *client) writePump() {
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(msg); err != nil {
			log.Println("WebSocket write error:", err)
			// Unblocks the read loop, which unregisters the client
			c.conn.Close()
			return
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	c := newClient(conn)
	s.clientsMutex.Lock()
	s.clients[conn] = c
	s.clientsMutex.Unlock()
	defer func() {
		s.clientsMutex.Lock()
		if s.clients[conn] == c {
			delete(s.clients, conn)
		}
		s.clientsMutex.Unlock()
		c.stop()
	}()
	go c.writePump()

	// Send the latest status right away
	c.enqueue(s.snapshot())

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("WebSocket read error:", err)
			}
			return
		}

		if err := s.apply(cmd); err != nil {
			c.enqueue(map[string]string{"type": "error", "error": err.Error()})
			continue
		}
		c.enqueue(s.snapshot())
	}
}

// apply executes a client command against the controls
func (s *Server) apply(cmd Command) error {
	switch cmd.Type {
	case CmdSetWireframe:
		if cmd.Enabled == nil {
			return errors.New("setWireframe needs enabled")
		}
		s.SetWireframe(*cmd.Enabled)
		fmt.Printf("WIREFRAME: %v\n", *cmd.Enabled)
	case CmdToggleWireframe:
		fmt.Printf("WIREFRAME: %v\n", s.ToggleWireframe())
	case CmdSetSpeed:
		if cmd.Speed == nil || math.IsNaN(*cmd.Speed) || math.IsInf(*cmd.Speed, 0) {
			return errors.New("setSpeed needs a finite speed")
		}
		fmt.Printf("SPEED CHANGE: %.2fx -> %.2fx\n", s.SpeedMultiplier(), *cmd.Speed)
		s.speed.Store(math.Float64bits(*cmd.Speed))
	case CmdSetPaused:
		if cmd.Paused == nil {
			return errors.New("setPaused needs paused")
		}
		s.paused.Store(*cmd.Paused)
	default:
		return fmt.Errorf("unknown command %q", cmd.Type)
	}
	return nil
}

// snapshot returns the last published status with live control values
func (s *Server) snapshot() Status {
	s.statusMutex.Lock()
	status := s.last
	s.statusMutex.Unlock()

	status.Type = "status"
	status.Wireframe = s.Wireframe()
	status.Paused = s.Paused()
	status.Speed = s.SpeedMultiplier()
	return status
}

// Publish records the frame status and queues it for every client.
// It never blocks: a client whose queue is full misses this status.
func (s *Server) Publish(status Status) {
	s.statusMutex.Lock()
	s.last = status
	s.statusMutex.Unlock()

	msg := s.snapshot()

	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	for _, c := range s.clients {
		c.enqueue(msg)
	}
}

// ClientCount returns the number of connected clients
func (s *Server) ClientCount() int {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	return len(s.clients)
}
