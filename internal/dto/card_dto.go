package dto

import (
	"time"

	"sales-intel-be/pkg/cards"

	"github.com/google/uuid"
)

type CardResponse struct {
	Id         uuid.UUID       `json:"id"`
	Type       string          `json:"type"`
	Status     string          `json:"status"`
	Title      string          `json:"title"`
	Summary    string          `json:"summary"`
	Content    *cards.Expanded `json:"content,omitempty"`
	EntityID   string          `json:"entity_id,omitempty"`
	EntityName string          `json:"entity_name,omitempty"`
	Priority   float64         `json:"priority"`
	Actions    []cards.Action  `json:"actions"`
	CreatedAt  time.Time       `json:"created_at"`
	ExpiresAt  time.Time       `json:"expires_at"`
}

func NewCardResponse(c cards.Card) CardResponse {
	return CardResponse{
		Id:         c.ID,
		Type:       string(c.Type),
		Status:     string(c.Status),
		Title:      c.Title,
		Summary:    c.Summary,
		Content:    c.Content,
		EntityID:   c.EntityID,
		EntityName: c.EntityName,
		Priority:   c.Priority,
		Actions:    c.Actions(),
		CreatedAt:  c.CreatedAt,
		ExpiresAt:  c.ExpiresAt,
	}
}

func NewCardResponses(cs []cards.Card) []CardResponse {
	out := make([]CardResponse, len(cs))
	for i, c := range cs {
		out[i] = NewCardResponse(c)
	}
	return out
}

type GetFeedResponse struct {
	WorkspaceID string         `json:"workspace_id"`
	Cards       []CardResponse `json:"cards"`
}

type CardActionRequest struct {
	WorkspaceID string `json:"workspace_id" validate:"required"`
	ActionID    string `json:"action_id" validate:"required"`
}

type CardActionResponse struct {
	Card CardResponse `json:"card"`
}

type ClearFeedResponse struct {
	Removed int `json:"removed"`
}

// FeedEvent is pushed to websocket subscribers when the feed changes.
type FeedEvent struct {
	Type        string        `json:"type"` // card_created | card_updated | card_expired | feed_cleared
	WorkspaceID string        `json:"workspace_id"`
	Card        *CardResponse `json:"card,omitempty"`
	At          time.Time     `json:"at"`
}
