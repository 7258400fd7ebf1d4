package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// newConnPair upgrades a real websocket over httptest and returns both ends.
func newConnPair(t *testing.T) (server, client *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	select {
	case server = <-serverConns:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for server connection")
	}
	return server, client
}

func TestBroadcastDelivers(t *testing.T) {
	hub := NewHub()
	server, client := newConnPair(t)
	hub.AddConnection(1, server)

	hub.Broadcast(1, WSMessage{
		Type: EventResponseSubmitted,
		Data: map[string]uint{"poll_id": 1},
	})

	client.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(string(data), EventResponseSubmitted) {
		t.Errorf("expected %q event, got %s", EventResponseSubmitted, data)
	}
}

func TestBroadcastConcurrentOverDeadConnection(t *testing.T) {
	hub := NewHub()
	server, client := newConnPair(t)
	hub.AddConnection(1, server)

	client.Close()
	server.Close()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				hub.Broadcast(1, WSMessage{Type: EventResponseSubmitted})
			}
		}()
	}
	wg.Wait()

	if got := hub.Watchers(1); got != 0 {
		t.Errorf("expected the dead connection to be dropped, got %d watchers", got)
	}
}

func TestBroadcastConcurrentWithSubscriptionChanges(t *testing.T) {
	hub := NewHub()
	server, _ := newConnPair(t)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 25; i++ {
			hub.AddConnection(1, server)
			hub.RemoveConnection(1, server)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 25; i++ {
			hub.Broadcast(1, WSMessage{Type: EventPollStateChanged})
		}
	}()
	wg.Wait()
}
