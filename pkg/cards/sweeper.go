package cards

import (
	"sync"
	"time"
)

// Target is anything the sweeper can evict expired cards from. A single
// Store implements it; the feed repository implements it across sessions.
type Target interface {
	Sweep() []Card
}

// Sweeper drives the periodic TTL sweep. Its lifecycle belongs to the
// owning session/server: Start is idempotent (a second call never spawns a
// duplicate loop) and Stop cancels the loop on teardown.
type Sweeper struct {
	target   Target
	interval time.Duration
	onEvict  func([]Card)

	mu      sync.Mutex
	stop    chan struct{}
	running bool
}

// NewSweeper creates a sweeper for the target. onEvict may be nil; when set
// it receives each batch of evicted cards (for fanout to subscribers).
func NewSweeper(target Target, interval time.Duration, onEvict func([]Card)) *Sweeper {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Sweeper{
		target:   target,
		interval: interval,
		onEvict:  onEvict,
	}
}

// Start launches the sweep loop. Calling Start on a running sweeper is a
// no-op.
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})

	go s.loop(s.stop)
}

// Stop cancels the sweep loop. Safe to call multiple times.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	close(s.stop)
	s.running = false
}

// Running reports whether the loop is active.
func (s *Sweeper) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Sweeper) loop(stop chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			evicted := s.target.Sweep()
			if len(evicted) > 0 && s.onEvict != nil {
				s.onEvict(evicted)
			}
		}
	}
}
