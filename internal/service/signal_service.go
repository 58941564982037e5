package service

import (
	"context"
	"encoding/json"
	"time"

	"sales-intel-be/internal/dto"
	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/memory"
	"sales-intel-be/pkg/events"
	pktNats "sales-intel-be/pkg/nats"
	"sales-intel-be/pkg/signals"
	"sales-intel-be/pkg/verticals"
)

type ISignalService interface {
	Catalog() []dto.SignalDefinitionResponse
	Filter(ctx context.Context, req *dto.FilterSignalsRequest) (*dto.FilterSignalsResponse, error)
	Ingest(ctx context.Context, req *dto.IngestSignalsRequest) (*dto.IngestSignalsResponse, error)
}

type signalService struct {
	filter           *signals.Filter
	feedRepo         *memory.FeedRepository
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewSignalService(
	filter *signals.Filter,
	feedRepo *memory.FeedRepository,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ISignalService {
	return &signalService{
		filter:           filter,
		feedRepo:         feedRepo,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

func (s *signalService) Catalog() []dto.SignalDefinitionResponse {
	out := make([]dto.SignalDefinitionResponse, len(signals.DefaultCatalog))
	for i, d := range signals.DefaultCatalog {
		out[i] = dto.SignalDefinitionResponse{
			Kind:             d.Kind,
			DisplayName:      d.DisplayName,
			Category:         string(d.Category),
			BaseWeight:       d.BaseWeight,
			RelevanceFactors: d.RelevanceFactors,
			DataSources:      d.DataSources,
			DecayWindowDays:  d.DecayWindowDays,
			Insight:          d.Insight,
		}
	}
	return out
}

func (s *signalService) Filter(ctx context.Context, req *dto.FilterSignalsRequest) (*dto.FilterSignalsResponse, error) {
	session, found := s.feedRepo.Get(req.WorkspaceID)
	if !found {
		return nil, ErrWorkspaceNotFound
	}

	ws := session.Workspace
	key := verticals.Key{Vertical: ws.Vertical, SubVertical: ws.SubVertical, Region: ws.Region}

	sigs := make([]signals.Instance, len(req.Signals))
	for i, d := range req.Signals {
		sigs[i] = d.ToInstance()
	}

	result := s.filter.FilterSignals(ctx, key, sigs, signals.Thresholds{
		MinConfidence: req.MinConfidence,
		MinRelevance:  req.MinRelevance,
		PriorityKinds: req.PriorityKinds,
	})

	return &dto.FilterSignalsResponse{
		Configured: result.Configured,
		Signals:    result.Signals,
	}, nil
}

// Ingest accepts a detected signal batch and hands it to the async pipeline.
// The batch is processed by the consumer service, which filters, scores and
// mints feed cards.
func (s *signalService) Ingest(ctx context.Context, req *dto.IngestSignalsRequest) (*dto.IngestSignalsResponse, error) {
	if _, found := s.feedRepo.Get(req.WorkspaceID); !found {
		return nil, ErrWorkspaceNotFound
	}

	msgPayload := dto.PublishSignalBatchMessage{
		WorkspaceID: req.WorkspaceID,
		Signals:     req.Signals,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}

	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewSignalBatchDetected(req.WorkspaceID, len(req.Signals))
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("SignalService", "failed to publish batch event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	s.logger.Info("SignalService", "signal batch queued", map[string]interface{}{
		"workspace_id": req.WorkspaceID,
		"count":        len(req.Signals),
		"queued_at":    time.Now(),
	})

	return &dto.IngestSignalsResponse{Accepted: len(req.Signals)}, nil
}
