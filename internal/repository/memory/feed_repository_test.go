package memory

import (
	"testing"
	"time"

	"sales-intel-be/pkg/cards"
	"sales-intel-be/pkg/store"
)

func TestGetOrCreateReturnsSameSession(t *testing.T) {
	repo := NewFeedRepository(time.Hour)
	ws := &store.Workspace{ID: "ws-1", Vertical: "banking", SubVertical: "employee-banking"}

	first := repo.GetOrCreate(ws)
	first.Cards.Insert(cards.New(cards.TypeSignal, "a", "", time.Now()))

	second := repo.GetOrCreate(&store.Workspace{ID: "ws-1"})
	if second != first {
		t.Fatal("GetOrCreate minted a new session for an existing workspace")
	}
	if second.Cards.Len() != 1 {
		t.Errorf("cards = %d, want the previously inserted card", second.Cards.Len())
	}
	if second.Workspace.Vertical != "banking" {
		t.Errorf("workspace vertical = %q, want the original workspace kept", second.Workspace.Vertical)
	}
}

func TestGetMissingSession(t *testing.T) {
	repo := NewFeedRepository(time.Hour)
	if session, ok := repo.Get("nope"); ok || session != nil {
		t.Errorf("Get = (%v, %v), want miss", session, ok)
	}
}

func TestDeleteRemovesSession(t *testing.T) {
	repo := NewFeedRepository(time.Hour)
	repo.GetOrCreate(&store.Workspace{ID: "ws-1"})

	repo.Delete("ws-1")
	if _, ok := repo.Get("ws-1"); ok {
		t.Error("session survived Delete")
	}
}

func TestSessionsSnapshot(t *testing.T) {
	repo := NewFeedRepository(time.Hour)
	repo.GetOrCreate(&store.Workspace{ID: "ws-1"})
	repo.GetOrCreate(&store.Workspace{ID: "ws-2"})

	sessions := repo.Sessions()
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}
	for _, id := range []string{"ws-1", "ws-2"} {
		if sessions[id] == nil {
			t.Errorf("session %q missing from snapshot", id)
		}
	}
}
