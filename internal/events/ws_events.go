// Package events fans out confinement transitions to subscribers.
package events

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 2 * time.Second

// Server streams hub events over a websocket as JSON, one message per event.
type Server struct {
	hub      *Hub
	upgrader websocket.Upgrader

	mu     sync.Mutex
	closed bool
	conns  sync.WaitGroup
}

// NewServer creates a websocket event server over hub.
func NewServer(hub *Hub) *Server {
	return &Server{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     loopbackOrigin,
		},
	}
}

// ServeHTTP upgrades the connection, replays the latest event, and streams new ones
// until the client goes away.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.track() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	defer s.conns.Done()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	ch := s.hub.Subscribe()
	defer s.hub.Unsubscribe(ch)

	closed := make(chan struct{})
	go s.drainReads(conn, closed)

	if last, ok := s.hub.Last(); ok {
		if err := s.send(conn, last); err != nil {
			return
		}
	}
	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case <-s.hub.Done():
			s.sendClose(conn)
			return
		case ev := <-ch:
			if err := s.send(conn, ev); err != nil {
				return
			}
		}
	}
}

// Close ends every open stream and waits for their handlers to return. Hijacked
// websocket connections are not closed by http.Server.Shutdown.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.hub.Close()
	s.conns.Wait()
}

// track registers a handler unless the server is closed.
func (s *Server) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns.Add(1)
	return true
}

// sendClose tells the peer the stream is ending.
func (s *Server) sendClose(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutdown")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
}

// drainReads consumes client frames so control messages are processed, and
// signals when the peer disconnects.
func (s *Server) drainReads(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// send writes one event with a deadline.
func (s *Server) send(conn *websocket.Conn, ev Event) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(ev)
}

// loopbackOrigin admits non-browser clients (no Origin) and pages served from
// this machine; any other web page is refused.
func loopbackOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
