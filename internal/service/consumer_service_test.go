package service

import (
	"context"
	"testing"
	"time"

	"sales-intel-be/internal/dto"
	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/memory"
	"sales-intel-be/pkg/cards"
	"sales-intel-be/pkg/signals"
	"sales-intel-be/pkg/store"

	"github.com/google/uuid"
)

// capturingCardService records pushed cards and does nothing else.
type capturingCardService struct {
	pushed []cards.Card
}

func (c *capturingCardService) CreateWorkspace(context.Context, string, *dto.CreateWorkspaceRequest) (*dto.CreateWorkspaceResponse, error) {
	return nil, nil
}
func (c *capturingCardService) GetFeed(context.Context, string) (*dto.GetFeedResponse, error) {
	return nil, nil
}
func (c *capturingCardService) ApplyAction(context.Context, string, uuid.UUID, string) (*dto.CardActionResponse, error) {
	return nil, nil
}
func (c *capturingCardService) ClearFeed(context.Context, string) (*dto.ClearFeedResponse, error) {
	return nil, nil
}
func (c *capturingCardService) PushCard(_ string, _ *memory.FeedSession, card cards.Card) {
	c.pushed = append(c.pushed, card)
}
func (c *capturingCardService) StartSweeper()       {}
func (c *capturingCardService) StopSweeper()        {}
func (c *capturingCardService) Sweep() []cards.Card { return nil }

func TestMintSignalCardsUseFeedTimeNotDetectionTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	capture := &capturingCardService{}
	cs := &consumerService{
		cardService: capture,
		logger:      logger.NewNop(),
		now:         func() time.Time { return now },
	}
	session := &memory.FeedSession{
		Workspace: &store.Workspace{ID: "ws-1"},
		Cards:     cards.NewStore(),
	}

	stale := signals.Instance{
		Kind:       "hiring-expansion",
		EntityID:   "ent-1",
		EntityName: "Falcon Logistics",
		Confidence: 0.9,
		DetectedAt: now.Add(-48 * time.Hour),
	}
	cs.mintSignalCards("ws-1", session, []signals.Instance{stale})

	if len(capture.pushed) != 1 {
		t.Fatalf("pushed %d cards, want 1", len(capture.pushed))
	}
	card := capture.pushed[0]
	if !card.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want the feed clock %v", card.CreatedAt, now)
	}
	want := now.Add(cards.TTL(cards.TypeSignal))
	if !card.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", card.ExpiresAt, want)
	}
	if card.Expired(now) {
		t.Error("card for an old signal expired at mint time")
	}
}
