package cards

import (
	"sync"
	"testing"
	"time"
)

// fakeTarget hands out one canned batch per sweep.
type fakeTarget struct {
	mu      sync.Mutex
	batches [][]Card
	sweeps  int
}

func (f *fakeTarget) Sweep() []Card {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sweeps++
	if len(f.batches) == 0 {
		return nil
	}
	batch := f.batches[0]
	f.batches = f.batches[1:]
	return batch
}

func TestSweeperEvictionCallback(t *testing.T) {
	expired := New(TypeSystem, "stale", "", time.Now().Add(-time.Hour))
	target := &fakeTarget{batches: [][]Card{{expired}}}

	evicted := make(chan []Card, 1)
	s := NewSweeper(target, 5*time.Millisecond, func(cards []Card) {
		select {
		case evicted <- cards:
		default:
		}
	})
	s.Start()
	defer s.Stop()

	select {
	case batch := <-evicted:
		if len(batch) != 1 || batch[0].ID != expired.ID {
			t.Errorf("evicted batch = %v, want the expired card", batch)
		}
	case <-time.After(time.Second):
		t.Fatal("no eviction callback within a second")
	}
}

func TestSweeperStartIdempotent(t *testing.T) {
	target := &fakeTarget{}
	s := NewSweeper(target, 5*time.Millisecond, nil)

	s.Start()
	s.Start()
	if !s.Running() {
		t.Fatal("sweeper not running after Start")
	}

	time.Sleep(25 * time.Millisecond)
	s.Stop()
	s.Stop()
	if s.Running() {
		t.Error("sweeper still running after Stop")
	}

	target.mu.Lock()
	sweeps := target.sweeps
	target.mu.Unlock()
	if sweeps == 0 {
		t.Error("no sweeps observed while running")
	}
}

func TestSweeperStopHaltsLoop(t *testing.T) {
	target := &fakeTarget{}
	s := NewSweeper(target, time.Millisecond, nil)
	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.Stop()

	target.mu.Lock()
	after := target.sweeps
	target.mu.Unlock()

	time.Sleep(15 * time.Millisecond)
	target.mu.Lock()
	later := target.sweeps
	target.mu.Unlock()

	if later != after {
		t.Errorf("sweeps continued after Stop: %d then %d", after, later)
	}
}
