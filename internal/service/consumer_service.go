package service

import (
	"context"
	"encoding/json"
	"time"

	"sales-intel-be/internal/dto"
	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/memory"
	"sales-intel-be/pkg/cards"
	"sales-intel-be/pkg/scoring"
	"sales-intel-be/pkg/signals"
	"sales-intel-be/pkg/store"
	"sales-intel-be/pkg/verticals"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the signal batch topic and turns each batch into
// feed cards: signal cards for what was detected, a decision card per scored
// entity and one next-best-action card for the strongest prospect.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	feedRepo       *memory.FeedRepository
	filter         *signals.Filter
	directory      IDirectoryService
	scoringService IScoringService
	cardService    ICardService
	logger         logger.ILogger
	now            func() time.Time
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	feedRepo *memory.FeedRepository,
	filter *signals.Filter,
	directory IDirectoryService,
	scoringService IScoringService,
	cardService ICardService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		feedRepo:       feedRepo,
		filter:         filter,
		directory:      directory,
		scoringService: scoringService,
		cardService:    cardService,
		logger:         log,
		now:            time.Now,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishSignalBatchMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "failed to unmarshal batch message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	session, found := cs.feedRepo.Get(payload.WorkspaceID)
	if !found {
		// Session expired while the batch was queued. Nothing to deliver to.
		cs.logger.Warn("ConsumerService", "dropping batch for expired workspace", map[string]interface{}{
			"workspace_id": payload.WorkspaceID,
		})
		msg.Ack()
		return
	}

	ws := session.Workspace
	key := verticals.Key{Vertical: ws.Vertical, SubVertical: ws.SubVertical, Region: ws.Region}

	sigs := make([]signals.Instance, len(payload.Signals))
	for i, d := range payload.Signals {
		sigs[i] = d.ToInstance()
	}

	result := cs.filter.FilterSignals(ctx, key, sigs, signals.Thresholds{})
	if !result.Configured {
		cs.logger.Warn("ConsumerService", "no vertical config, batch dropped", map[string]interface{}{
			"workspace_id": payload.WorkspaceID,
			"key":          key.String(),
		})
		msg.Ack()
		return
	}
	if len(result.Signals) == 0 {
		cs.logger.Info("ConsumerService", "batch fully filtered out", map[string]interface{}{
			"workspace_id": payload.WorkspaceID,
			"received":     len(sigs),
		})
		msg.Ack()
		return
	}

	cs.directory.Index(payload.WorkspaceID, result.Signals)
	cs.mintSignalCards(payload.WorkspaceID, session, result.Signals)

	var best *scoring.Decision
	for _, entityData := range groupByEntity(result.Signals) {
		decision, err := cs.scoringService.Score(ctx, ws, entityData)
		if err != nil {
			cs.logger.Error("ConsumerService", "failed to score entity", map[string]interface{}{
				"entity_id": entityData.EntityID,
				"error":     err.Error(),
			})
			continue
		}
		cs.mintDecisionCard(payload.WorkspaceID, session, decision)
		if best == nil || decision.Score.Composite > best.Score.Composite {
			best = decision
		}
	}

	if best != nil && best.Grade != scoring.GradeCold {
		cs.mintNBACard(payload.WorkspaceID, session, ws, best)
	}

	msg.Ack()
}

func (cs *consumerService) mintSignalCards(workspaceID string, session *memory.FeedSession, sigs []signals.Instance) {
	// Cards expire relative to when they enter the feed, not when the signal
	// was detected; an old signal still deserves its full TTL on screen.
	now := cs.now()
	for _, sig := range sigs {
		def, ok := signals.LookupDefinition(sig.Kind)
		if !ok {
			continue
		}
		card := cards.New(cards.TypeSignal, def.DisplayName+": "+sig.EntityName, def.Insight, now)
		card.EntityID = sig.EntityID
		card.EntityName = sig.EntityName
		card.Priority = sig.Confidence * 100
		cs.cardService.PushCard(workspaceID, session, card)
	}
}

func (cs *consumerService) mintDecisionCard(workspaceID string, session *memory.FeedSession, decision *scoring.Decision) {
	summary := ""
	if len(decision.Reasoning) > 0 {
		summary = decision.Reasoning[0]
	}
	card := cards.New(cards.TypeDecision, "Decision: "+decision.EntityName, summary, decision.GeneratedAt)
	card.EntityID = decision.EntityID
	card.EntityName = decision.EntityName
	card.Priority = decision.Score.Composite
	card.Content = &cards.Expanded{
		Reasoning:  decision.Reasoning,
		Confidence: decision.Confidence,
		Tags:       []string{string(decision.Grade)},
	}
	cs.cardService.PushCard(workspaceID, session, card)
}

func (cs *consumerService) mintNBACard(workspaceID string, session *memory.FeedSession, ws *store.Workspace, decision *scoring.Decision) {
	action := "Review the latest signals and reach out."
	if len(decision.Patterns) > 0 {
		action = decision.Patterns[0].Pattern.SuggestedAction
	}
	card := cards.New(cards.TypeNextBestAction, "Next best action: "+decision.EntityName, action, decision.GeneratedAt)
	card.EntityID = decision.EntityID
	card.EntityName = decision.EntityName
	card.Priority = decision.Score.Composite
	card.Content = &cards.Expanded{
		Reasoning:  decision.Reasoning,
		Confidence: decision.Confidence,
		Tags:       []string{string(decision.Grade)},
	}
	cs.cardService.PushCard(workspaceID, session, card)

	ws.LastEntityID = decision.EntityID
	ws.LastEntityName = decision.EntityName
}

// groupByEntity folds a filtered batch into per-entity scoring inputs.
func groupByEntity(sigs []signals.Instance) map[string]*scoring.EntityData {
	entities := make(map[string]*scoring.EntityData)
	for _, sig := range sigs {
		e, ok := entities[sig.EntityID]
		if !ok {
			e = &scoring.EntityData{
				EntityID: sig.EntityID,
				Name:     sig.EntityName,
			}
			entities[sig.EntityID] = e
		}
		e.Signals = append(e.Signals, sig)
	}
	return entities
}
