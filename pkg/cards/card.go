package cards

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies what kind of card sits in the feed.
type Type string

const (
	TypeNextBestAction Type = "next-best-action"
	TypeDecision       Type = "decision"
	TypeSignal         Type = "signal"
	TypeReport         Type = "report"
	TypeRecall         Type = "recall"
	TypeSystem         Type = "system"
	TypeContext        Type = "context"
)

// Status is the card's lifecycle state. Dismissed cards are terminal and
// leave the collection; they are never resurrected.
type Status string

const (
	StatusActive     Status = "active"
	StatusSaved      Status = "saved"
	StatusEvaluating Status = "evaluating"
	StatusDismissed  Status = "dismissed"
)

// Action is a UI-visible action offered on a card in its current status.
type Action struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Expanded is the optional expanded content behind a card.
type Expanded struct {
	Reasoning  []string `json:"reasoning,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// Card is the unit of the decision feed.
type Card struct {
	ID      uuid.UUID `json:"id"`
	Type    Type      `json:"type"`
	Status  Status    `json:"status"`
	Title   string    `json:"title"`
	Summary string    `json:"summary"`
	Content *Expanded `json:"content,omitempty"`

	EntityID   string  `json:"entity_id,omitempty"`
	EntityName string  `json:"entity_name,omitempty"`
	Priority   float64 `json:"priority"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Actions lists the actions visible for the card's current status.
func (c Card) Actions() []Action {
	return VisibleActions(c.Type, c.Status)
}

// Expired reports whether the card's TTL has passed at the given time.
func (c Card) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// defaultTTLs gives every card type its time-to-live.
var defaultTTLs = map[Type]time.Duration{
	TypeNextBestAction: 4 * time.Hour,
	TypeDecision:       24 * time.Hour,
	TypeSignal:         12 * time.Hour,
	TypeReport:         24 * time.Hour,
	TypeRecall:         1 * time.Hour,
	TypeSystem:         10 * time.Minute,
	TypeContext:        30 * time.Minute,
}

// TTL returns the type's time-to-live.
func TTL(t Type) time.Duration {
	if ttl, ok := defaultTTLs[t]; ok {
		return ttl
	}
	return 1 * time.Hour
}

// New mints a card of the given type in status active with its expiry
// derived from the type TTL.
func New(t Type, title, summary string, now time.Time) Card {
	return Card{
		ID:        uuid.New(),
		Type:      t,
		Status:    StatusActive,
		Title:     title,
		Summary:   summary,
		CreatedAt: now,
		ExpiresAt: now.Add(TTL(t)),
	}
}
