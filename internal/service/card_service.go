package service

import (
	"context"
	"time"

	"sales-intel-be/internal/dto"
	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/memory"
	"sales-intel-be/pkg/cards"
	"sales-intel-be/pkg/events"
	pktNats "sales-intel-be/pkg/nats"
	"sales-intel-be/pkg/store"

	"github.com/google/uuid"
)

// FeedDelivery pushes real-time feed updates to subscribed clients.
// Typically implemented by the WebSocket Hub.
type FeedDelivery interface {
	Publish(workspaceID string, event dto.FeedEvent)
}

type ICardService interface {
	CreateWorkspace(ctx context.Context, userID string, req *dto.CreateWorkspaceRequest) (*dto.CreateWorkspaceResponse, error)
	GetFeed(ctx context.Context, workspaceID string) (*dto.GetFeedResponse, error)
	ApplyAction(ctx context.Context, workspaceID string, cardID uuid.UUID, actionID string) (*dto.CardActionResponse, error)
	ClearFeed(ctx context.Context, workspaceID string) (*dto.ClearFeedResponse, error)
	PushCard(workspaceID string, session *memory.FeedSession, card cards.Card)

	StartSweeper()
	StopSweeper()
	Sweep() []cards.Card
}

type cardService struct {
	feedRepo       *memory.FeedRepository
	delivery       FeedDelivery
	eventPublisher *pktNats.Publisher
	sweeper        *cards.Sweeper
	logger         logger.ILogger
}

func NewCardService(
	feedRepo *memory.FeedRepository,
	delivery FeedDelivery,
	eventPublisher *pktNats.Publisher,
	sweepInterval time.Duration,
	log logger.ILogger,
) ICardService {
	s := &cardService{
		feedRepo:       feedRepo,
		delivery:       delivery,
		eventPublisher: eventPublisher,
		logger:         log,
	}
	s.sweeper = cards.NewSweeper(s, sweepInterval, nil)
	return s
}

func (s *cardService) CreateWorkspace(ctx context.Context, userID string, req *dto.CreateWorkspaceRequest) (*dto.CreateWorkspaceResponse, error) {
	ws := &store.Workspace{
		ID:          uuid.NewString(),
		UserID:      userID,
		Vertical:    req.Vertical,
		SubVertical: req.SubVertical,
		Region:      req.Region,
	}
	s.feedRepo.GetOrCreate(ws)
	s.logger.Info("CardService", "workspace created", map[string]interface{}{
		"workspace_id": ws.ID,
		"vertical":     ws.Vertical,
	})
	return &dto.CreateWorkspaceResponse{WorkspaceID: ws.ID}, nil
}

func (s *cardService) GetFeed(ctx context.Context, workspaceID string) (*dto.GetFeedResponse, error) {
	session, found := s.feedRepo.Get(workspaceID)
	if !found {
		return nil, ErrWorkspaceNotFound
	}
	return &dto.GetFeedResponse{
		WorkspaceID: workspaceID,
		Cards:       dto.NewCardResponses(session.Cards.List(nil)),
	}, nil
}

func (s *cardService) ApplyAction(ctx context.Context, workspaceID string, cardID uuid.UUID, actionID string) (*dto.CardActionResponse, error) {
	session, found := s.feedRepo.Get(workspaceID)
	if !found {
		return nil, ErrWorkspaceNotFound
	}

	card, err := session.Cards.Apply(cardID, actionID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewCardResponse(card)
	s.publishFeedEvent(workspaceID, "card_updated", &resp)
	s.publishEvent(ctx, events.NewCardTransitioned(workspaceID, card.ID.String(), actionID, string(card.Status)))

	return &dto.CardActionResponse{Card: resp}, nil
}

func (s *cardService) ClearFeed(ctx context.Context, workspaceID string) (*dto.ClearFeedResponse, error) {
	session, found := s.feedRepo.Get(workspaceID)
	if !found {
		return nil, ErrWorkspaceNotFound
	}
	removed := session.Cards.Clear()
	s.publishFeedEvent(workspaceID, "feed_cleared", nil)
	return &dto.ClearFeedResponse{Removed: removed}, nil
}

// PushCard inserts a card into the session feed and fans the change out to
// subscribers. If an active next-best-action card got replaced, its removal
// is announced as well.
func (s *cardService) PushCard(workspaceID string, session *memory.FeedSession, card cards.Card) {
	replaced := session.Cards.Insert(card)
	if replaced != nil {
		old := dto.NewCardResponse(*replaced)
		s.publishFeedEvent(workspaceID, "card_updated", &old)
		s.publishEvent(context.Background(), events.NewNBAReplaced(workspaceID, replaced.ID.String(), card.ID.String()))
	}

	resp := dto.NewCardResponse(card)
	s.publishFeedEvent(workspaceID, "card_created", &resp)
	s.publishEvent(context.Background(), events.NewCardCreated(workspaceID, card.ID.String(), string(card.Type)))
}

func (s *cardService) StartSweeper() {
	s.sweeper.Start()
}

func (s *cardService) StopSweeper() {
	s.sweeper.Stop()
}

// Sweep walks every live session, evicts expired cards and announces each
// eviction. It is the sweeper's target so one loop covers all feeds.
func (s *cardService) Sweep() []cards.Card {
	var evicted []cards.Card
	for workspaceID, session := range s.feedRepo.Sessions() {
		for _, card := range session.Cards.Sweep() {
			resp := dto.NewCardResponse(card)
			s.publishFeedEvent(workspaceID, "card_expired", &resp)
			s.publishEvent(context.Background(), events.NewCardExpired(workspaceID, card.ID.String(), string(card.Type)))
			evicted = append(evicted, card)
		}
	}
	if len(evicted) > 0 {
		s.logger.Info("CardService", "expired cards evicted", map[string]interface{}{
			"count": len(evicted),
		})
	}
	return evicted
}

func (s *cardService) publishFeedEvent(workspaceID, eventType string, card *dto.CardResponse) {
	if s.delivery == nil {
		return
	}
	s.delivery.Publish(workspaceID, dto.FeedEvent{
		Type:        eventType,
		WorkspaceID: workspaceID,
		Card:        card,
		At:          time.Now(),
	})
}

func (s *cardService) publishEvent(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("CardService", "failed to publish card event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
	}
}
