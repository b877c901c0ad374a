package websocket

import (
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}

func TestHubReconnectKeepsNewConnection(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	stale := &Client{Hub: hub, ID: 7, UserType: "client", Send: make(chan []byte, 1)}
	replacement := &Client{Hub: hub, ID: 7, UserType: "client", Send: make(chan []byte, 1)}

	hub.Register <- stale
	hub.Register <- replacement

	// The overwritten connection's send channel is closed on takeover
	waitFor(t, func() bool {
		select {
		case _, ok := <-stale.Send:
			return !ok
		default:
			return false
		}
	}, "stale send channel to close")

	// The stale connection's teardown must not evict its replacement
	hub.Unregister <- stale

	waitFor(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return hub.Clients[7] == replacement
	}, "replacement to stay registered")

	hub.SendToUser(7, &Message{Type: "notification", Timestamp: time.Now()})
	waitFor(t, func() bool { return len(replacement.Send) == 1 }, "replacement to receive the push")
}

func TestHubUnregisterRemovesConnection(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Hub: hub, ID: 3, UserType: "provider", Send: make(chan []byte, 1)}
	hub.Register <- client
	waitFor(t, func() bool { return hub.IsUserConnected(3) }, "client to register")

	hub.Unregister <- client
	waitFor(t, func() bool { return !hub.IsUserConnected(3) }, "client to unregister")

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Errorf("send channel delivered a message instead of closing")
		}
	case <-time.After(2 * time.Second):
		t.Errorf("send channel not closed after unregister")
	}
}
