package events

import "time"

// Event is anything the decision pipeline announces on the bus: signal
// batches arriving, cards entering or leaving the feed.
type Event interface {
	// EventType returns the event's type code, e.g. "card.created".
	EventType() string

	// Payload returns the event's data fields.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation behind the constructors in this
// package; consumers only ever see the Event interface.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
