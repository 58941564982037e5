package websocket

import (
	"testing"
	"time"

	"sales-intel-be/internal/dto"
	"sales-intel-be/internal/pkg/logger"
)

func newTestHub() *Hub {
	h := NewHub(nil, logger.NewNop())
	go h.Run()
	return h
}

func registerClient(h *Hub, workspaceID string, buffer int) *Client {
	client := &Client{
		Hub:         h,
		WorkspaceID: workspaceID,
		Send:        make(chan []byte, buffer),
	}
	h.register <- client
	return client
}

func clientCount(h *Hub, workspaceID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[workspaceID])
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached within a second")
}

func TestPublishDeliversToWorkspaceClients(t *testing.T) {
	h := newTestHub()
	client := registerClient(h, "ws-1", 4)
	other := registerClient(h, "ws-2", 4)
	waitFor(t, func() bool { return clientCount(h, "ws-1") == 1 && clientCount(h, "ws-2") == 1 })

	h.Publish("ws-1", dto.FeedEvent{Type: "card_created", WorkspaceID: "ws-1"})

	select {
	case <-client.Send:
	case <-time.After(time.Second):
		t.Fatal("subscribed client received nothing")
	}
	select {
	case <-other.Send:
		t.Fatal("event leaked to another workspace")
	default:
	}
}

func TestSlowSubscriberIsUnregisteredWithoutPanic(t *testing.T) {
	h := newTestHub()
	client := registerClient(h, "ws-1", 1)
	waitFor(t, func() bool { return clientCount(h, "ws-1") == 1 })

	// First event fills the buffer; the second overflows it and must evict
	// the client through the unregister path exactly once.
	h.Publish("ws-1", dto.FeedEvent{Type: "card_created", WorkspaceID: "ws-1"})
	h.Publish("ws-1", dto.FeedEvent{Type: "card_updated", WorkspaceID: "ws-1"})

	waitFor(t, func() bool { return clientCount(h, "ws-1") == 0 })

	// Send must be closed by the hub, and only drained messages remain.
	drained := 0
	for range client.Send {
		drained++
	}
	if drained != 1 {
		t.Errorf("drained %d buffered messages, want 1", drained)
	}

	// A later publish to the emptied workspace must be a no-op.
	h.Publish("ws-1", dto.FeedEvent{Type: "card_expired", WorkspaceID: "ws-1"})
}
