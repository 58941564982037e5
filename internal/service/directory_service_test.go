package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"sales-intel-be/pkg/signals"
	"sales-intel-be/pkg/store"
)

func demoSignal(entityID, name string) signals.Instance {
	return signals.Instance{
		Kind:       "hiring-expansion",
		EntityID:   entityID,
		EntityName: name,
		Confidence: 0.9,
		Relevance:  0.8,
		DetectedAt: time.Now(),
	}
}

func TestDirectoryConcurrentIndexAndSearch(t *testing.T) {
	dir := NewDirectoryService()
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			dir.Index("ws-1", []signals.Instance{demoSignal("ent-1", "Falcon Logistics")})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if _, err := dir.Search(ctx, "falcon"); err != nil {
				t.Errorf("Search: %v", err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if _, err := dir.Discover(ctx, &store.Workspace{ID: "ws-1"}); err != nil {
				t.Errorf("Discover: %v", err)
				return
			}
		}
	}()
	wg.Wait()

	e, err := dir.Search(ctx, "Falcon Logistics")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if e == nil || len(e.Signals) != 500 {
		t.Fatalf("indexed entity = %+v, want 500 signals", e)
	}
}

func TestDirectorySearchReturnsCopy(t *testing.T) {
	dir := NewDirectoryService()
	ctx := context.Background()
	dir.Index("ws-1", []signals.Instance{demoSignal("ent-1", "Falcon Logistics")})

	found, err := dir.Search(ctx, "falcon")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	// Callers reassign these slices while scoring; the index must not see it.
	found.Signals = nil
	found.Name = "Renamed"

	again, err := dir.Search(ctx, "falcon")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if again == nil {
		t.Fatal("entity vanished from the index after caller mutation")
	}
	if len(again.Signals) != 1 || again.Name != "Falcon Logistics" {
		t.Errorf("index saw caller mutation: %+v", again)
	}
}

func TestDirectoryDiscoverOrdersBySignalCount(t *testing.T) {
	dir := NewDirectoryService()
	dir.Index("ws-1", []signals.Instance{
		demoSignal("ent-1", "Falcon Logistics"),
		demoSignal("ent-1", "Falcon Logistics"),
		demoSignal("ent-2", "Crescent Trading"),
	})

	out, err := dir.Discover(context.Background(), &store.Workspace{ID: "ws-1"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("entities = %d, want 2", len(out))
	}
	if out[0].EntityID != "ent-1" || out[1].EntityID != "ent-2" {
		t.Errorf("order = %s, %s; want signal-count descending", out[0].EntityID, out[1].EntityID)
	}
}
