package events

import "time"

// Event type codes published on the bus.
const (
	TypeSignalBatchDetected = "signal.batch_detected"
	TypeCardCreated         = "card.created"
	TypeCardTransitioned    = "card.transitioned"
	TypeCardExpired         = "card.expired"
	TypeNBAReplaced         = "card.nba_replaced"
)

// NewSignalBatchDetected wraps an incoming signal batch for the bus.
func NewSignalBatchDetected(sessionID string, count int) Event {
	return BaseEvent{
		Type: TypeSignalBatchDetected,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"count":      count,
		},
		OccurredAt: time.Now(),
	}
}

// NewCardCreated announces a freshly minted card.
func NewCardCreated(sessionID, cardID, cardType string) Event {
	return BaseEvent{
		Type: TypeCardCreated,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"card_id":    cardID,
			"card_type":  cardType,
		},
		OccurredAt: time.Now(),
	}
}

// NewCardTransitioned announces a status change driven by a user action.
func NewCardTransitioned(sessionID, cardID, action, status string) Event {
	return BaseEvent{
		Type: TypeCardTransitioned,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"card_id":    cardID,
			"action":     action,
			"status":     status,
		},
		OccurredAt: time.Now(),
	}
}

// NewNBAReplaced announces that a new next-best-action card displaced the
// previous one.
func NewNBAReplaced(sessionID, oldCardID, newCardID string) Event {
	return BaseEvent{
		Type: TypeNBAReplaced,
		Data: map[string]interface{}{
			"session_id":  sessionID,
			"old_card_id": oldCardID,
			"new_card_id": newCardID,
		},
		OccurredAt: time.Now(),
	}
}

// NewCardExpired announces a TTL eviction.
func NewCardExpired(sessionID, cardID, cardType string) Event {
	return BaseEvent{
		Type: TypeCardExpired,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"card_id":    cardID,
			"card_type":  cardType,
		},
		OccurredAt: time.Now(),
	}
}
