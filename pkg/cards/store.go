package cards

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("card not found")
	ErrInvalidAction = errors.New("action not valid for card status")
)

// Store owns the mutable card collection for one session. Every mutation
// (insert, transition, dismiss, sweep) is serialized through the store's
// lock, so a status transition can never interleave with an NBA replacement.
//
// Invariant: at most one card of type next-best-action is active at any
// time. Insert enforces this structurally by replacing the previous one in
// the same critical section.
type Store struct {
	mu    sync.Mutex
	cards map[uuid.UUID]Card
	clock func() time.Time
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithStoreClock injects a clock, for deterministic sweep tests.
func WithStoreClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.clock = now }
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		cards: make(map[uuid.UUID]Card),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insert adds a card to the collection. Inserting a next-best-action card
// atomically replaces any existing active NBA card; the old card leaves the
// collection, it is not merely hidden. Returns the replaced card if any.
func (s *Store) Insert(card Card) (replaced *Card) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if card.Type == TypeNextBestAction {
		for id, existing := range s.cards {
			if existing.Type == TypeNextBestAction && existing.Status == StatusActive {
				delete(s.cards, id)
				old := existing
				replaced = &old
				break
			}
		}
	}

	s.cards[card.ID] = card
	return replaced
}

// Apply runs the declared action against the card. An action not declared
// for the card's current status fails with ErrInvalidAction and leaves the
// card untouched. A transition into dismissed removes the card.
func (s *Store) Apply(id uuid.UUID, actionID string) (Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[id]
	if !ok {
		return Card{}, fmt.Errorf("apply %q: %w", actionID, ErrNotFound)
	}

	next, ok := targetStatus(card.Type, card.Status, actionID)
	if !ok {
		return card, fmt.Errorf("apply %q to %s card in status %s: %w", actionID, card.Type, card.Status, ErrInvalidAction)
	}

	card.Status = next
	if next == StatusDismissed {
		delete(s.cards, id)
	} else {
		s.cards[id] = card
	}
	return card, nil
}

// Dismiss force-dismisses a card regardless of its declared actions.
// Used for TTL eviction and workspace clears.
func (s *Store) Dismiss(id uuid.UUID) (Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[id]
	if !ok {
		return Card{}, ErrNotFound
	}
	card.Status = StatusDismissed
	delete(s.cards, id)
	return card, nil
}

// Sweep removes every card whose expiry has passed and returns the evicted
// cards. Removing an expired NBA card simply leaves zero active NBA cards.
func (s *Store) Sweep() []Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	var evicted []Card
	for id, card := range s.cards {
		if card.Expired(now) {
			card.Status = StatusDismissed
			evicted = append(evicted, card)
			delete(s.cards, id)
		}
	}
	return evicted
}

// Get returns a card by id.
func (s *Store) Get(id uuid.UUID) (Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[id]
	return card, ok
}

// ActiveNBA returns the single active next-best-action card, if present.
func (s *Store) ActiveNBA() (Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, card := range s.cards {
		if card.Type == TypeNextBestAction && card.Status == StatusActive {
			return card, true
		}
	}
	return Card{}, false
}

// Len reports the number of live cards.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards)
}

// List returns the cards in presentation order: the active NBA card first,
// the rest ordered by the caller-supplied key. Never raw insertion order.
// A nil less falls back to priority descending, then recency.
func (s *Store) List(less func(a, b Card) bool) []Card {
	s.mu.Lock()
	out := make([]Card, 0, len(s.cards))
	for _, card := range s.cards {
		out = append(out, card)
	}
	s.mu.Unlock()

	if less == nil {
		less = func(a, b Card) bool {
			if a.Priority != b.Priority {
				return a.Priority > b.Priority
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ni := out[i].Type == TypeNextBestAction && out[i].Status == StatusActive
		nj := out[j].Type == TypeNextBestAction && out[j].Status == StatusActive
		if ni != nj {
			return ni
		}
		return less(out[i], out[j])
	})
	return out
}

// Clear empties the collection. Used by the clear-workspace command.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.cards)
	s.cards = make(map[uuid.UUID]Card)
	return n
}
