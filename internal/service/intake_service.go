package service

import (
	"context"
	"encoding/json"

	"sales-intel-be/internal/dto"
	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/pkg/events"
	pktNats "sales-intel-be/pkg/nats"
)

// IIntakeService bridges externally detected signal batches, arriving over
// the NATS stream, into the internal processing pipeline.
type IIntakeService interface {
	Start()
}

type intakeService struct {
	subscriber       *pktNats.Subscriber
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewIntakeService(sub *pktNats.Subscriber, publisherService IPublisherService, log logger.ILogger) IIntakeService {
	return &intakeService{
		subscriber:       sub,
		publisherService: publisherService,
		logger:           log,
	}
}

// Start begins listening to the detection subjects with a durable consumer.
func (s *intakeService) Start() {
	err := s.subscriber.Subscribe("intel.detector.>", "intel-intake-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("IntakeService", "Failed to start intake subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("IntakeService", "Intake service started, listening to intel.detector.>", nil)
}

func (s *intakeService) handleEvent(ctx context.Context, event events.Event) error {
	raw, err := json.Marshal(event.Payload())
	if err != nil {
		return err
	}

	var batch dto.PublishSignalBatchMessage
	if err := json.Unmarshal(raw, &batch); err != nil || batch.WorkspaceID == "" {
		// Malformed detector payloads are logged and dropped, not retried.
		s.logger.Warn("IntakeService", "Dropping malformed detector event", map[string]interface{}{
			"subject": event.EventType(),
		})
		return nil
	}

	if err := s.publisherService.Publish(ctx, raw); err != nil {
		return err
	}

	s.logger.Info("IntakeService", "Detector batch forwarded to pipeline", map[string]interface{}{
		"workspace_id": batch.WorkspaceID,
		"count":        len(batch.Signals),
	})
	return nil
}
