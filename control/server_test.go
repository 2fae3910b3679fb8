package control

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dial(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readStatus(t *testing.T, conn *websocket.Conn) Status {
	t.Helper()
	var status Status
	if err := conn.ReadJSON(&status); err != nil {
		t.Fatalf("read: %v", err)
	}
	return status
}

func TestToggleWireframe(t *testing.T) {
	s := NewServer(false)
	conn := dial(t, s)

	if status := readStatus(t, conn); status.Type != "status" || status.Wireframe {
		t.Fatalf("initial status = %+v", status)
	}

	if err := conn.WriteJSON(Command{Type: CmdToggleWireframe}); err != nil {
		t.Fatal(err)
	}
	if status := readStatus(t, conn); !status.Wireframe {
		t.Error("toggle did not enable wireframe")
	}
	if !s.Wireframe() {
		t.Error("server flag not set")
	}

	off := false
	if err := conn.WriteJSON(Command{Type: CmdSetWireframe, Enabled: &off}); err != nil {
		t.Fatal(err)
	}
	if status := readStatus(t, conn); status.Wireframe || s.Wireframe() {
		t.Error("setWireframe false ignored")
	}
}

func TestSpeedAndPause(t *testing.T) {
	s := NewServer(false)
	conn := dial(t, s)
	readStatus(t, conn)

	speed := 4.0
	conn.WriteJSON(Command{Type: CmdSetSpeed, Speed: &speed})
	if status := readStatus(t, conn); status.Speed != 4 {
		t.Errorf("speed = %v, want 4", status.Speed)
	}

	paused := true
	conn.WriteJSON(Command{Type: CmdSetPaused, Paused: &paused})
	if status := readStatus(t, conn); !status.Paused || !s.Paused() {
		t.Error("pause not applied")
	}
	if s.SpeedMultiplier() != 4 {
		t.Errorf("SpeedMultiplier = %v", s.SpeedMultiplier())
	}
}

func TestInvalidCommands(t *testing.T) {
	s := NewServer(true)
	conn := dial(t, s)
	readStatus(t, conn)

	for _, cmd := range []Command{
		{Type: "renderMode"},
		{Type: CmdSetWireframe},
		{Type: CmdSetSpeed},
	} {
		conn.WriteJSON(cmd)
		var reply map[string]interface{}
		if err := conn.ReadJSON(&reply); err != nil {
			t.Fatal(err)
		}
		if reply["type"] != "error" {
			t.Errorf("%q: reply %v, want error", cmd.Type, reply)
		}
	}

	if !s.Wireframe() {
		t.Error("invalid command changed the flag")
	}
}

func TestPublishBroadcasts(t *testing.T) {
	s := NewServer(false)
	a := dial(t, s)
	b := dial(t, s)
	readStatus(t, a)
	readStatus(t, b)

	if s.ClientCount() != 2 {
		t.Fatalf("ClientCount = %d, want 2", s.ClientCount())
	}

	s.Publish(Status{Frame: 120, FPS: 60, Lights: 10, SphereDraws: 3})

	for _, conn := range []*websocket.Conn{a, b} {
		status := readStatus(t, conn)
		if status.Frame != 120 || status.SphereDraws != 3 || status.Type != "status" {
			t.Errorf("broadcast = %+v", status)
		}
	}
}

func TestStartAndClose(t *testing.T) {
	s := NewServer(false)
	if err := s.Start("127.0.0.1:0"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Close(ctx); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestPublishSkipsStalledClient(t *testing.T) {
	s := NewServer(false)
	dial(t, s) // never reads
	live := dial(t, s)
	readStatus(t, live)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200000; i++ {
			s.Publish(Status{Frame: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Publish blocked on a client that is not reading")
	}

	// The reading client still gets statuses and its commands still apply
	if status := readStatus(t, live); status.Type != "status" {
		t.Errorf("status after flood = %+v", status)
	}
	if err := live.WriteJSON(Command{Type: CmdToggleWireframe}); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for !s.Wireframe() {
		if time.Now().After(deadline) {
			t.Fatal("toggle not applied after flood")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestClientQueue(t *testing.T) {
	c := newClient(nil)
	for i := 0; i < sendBuffer; i++ {
		if !c.enqueue(Status{Frame: i}) {
			t.Fatalf("message %d rejected before the queue was full", i)
		}
	}
	if c.enqueue(Status{}) {
		t.Error("full queue accepted a message")
	}

	c.stop()
	c.stop()
	if c.enqueue(Status{}) {
		t.Error("stopped client accepted a message")
	}
}
