package events

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// TestServer_StreamsEvents verifies the latest event is replayed and new events are streamed.
func TestServer_StreamsEvents(t *testing.T) {
	hub := NewHub()
	hub.Publish(Event{From: "idle", To: "confined", Reason: "focus"})
	srv := httptest.NewServer(NewServer(hub))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first Event
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read replay failed: %v", err)
	}
	if first.To != "confined" {
		t.Fatalf("expected replayed confined event, got %+v", first)
	}

	deadline := time.Now().Add(time.Second)
	for hub.Subscribers() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	hub.Publish(Event{From: "confined", To: "suspended", Reason: "drag"})

	var next Event
	if err := conn.ReadJSON(&next); err != nil {
		t.Fatalf("read stream failed: %v", err)
	}
	if next.To != "suspended" || next.Reason != "drag" {
		t.Fatalf("unexpected streamed event: %+v", next)
	}
}

// dialEvents connects to srv with an optional Origin header.
func dialEvents(t *testing.T, srv *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	var header http.Header
	if origin != "" {
		header = http.Header{"Origin": {origin}}
	}
	return websocket.DefaultDialer.Dial(url, header)
}

// TestServer_RejectsForeignOrigin verifies a page from another site cannot subscribe.
func TestServer_RejectsForeignOrigin(t *testing.T) {
	srv := httptest.NewServer(NewServer(NewHub()))
	defer srv.Close()

	conn, resp, err := dialEvents(t, srv, "http://evil.example")
	if err == nil {
		conn.Close()
		t.Fatalf("expected handshake to fail")
	}
	if !errors.Is(err, websocket.ErrBadHandshake) || resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 bad handshake, got err=%v resp=%v", err, resp)
	}
}

// TestServer_AllowsLoopbackOrigins verifies local pages and tools are accepted.
func TestServer_AllowsLoopbackOrigins(t *testing.T) {
	srv := httptest.NewServer(NewServer(NewHub()))
	defer srv.Close()

	for _, origin := range []string{"", "http://localhost:8080", "http://127.0.0.1:9000", "http://[::1]"} {
		conn, _, err := dialEvents(t, srv, origin)
		if err != nil {
			t.Fatalf("origin %q rejected: %v", origin, err)
		}
		conn.Close()
	}
}

// TestServer_CloseEndsStreams verifies Close disconnects subscribers and waits for them.
func TestServer_CloseEndsStreams(t *testing.T) {
	hub := NewHub()
	server := NewServer(hub)
	srv := httptest.NewServer(server)
	defer srv.Close()

	conn, _, err := dialEvents(t, srv, "")
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	deadline := time.Now().Add(time.Second)
	for hub.Subscribers() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	done := make(chan struct{})
	go func() {
		server.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return")
	}
	if n := hub.Subscribers(); n != 0 {
		t.Fatalf("expected no subscribers, got %d", n)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Fatalf("expected going-away close, got %v", err)
	}

	if _, resp, err := dialEvents(t, srv, ""); err == nil || resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 after close, got err=%v resp=%v", err, resp)
	}
}
