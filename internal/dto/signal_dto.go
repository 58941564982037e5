package dto

import (
	"time"

	"sales-intel-be/pkg/signals"
)

type SignalInstanceDTO struct {
	Kind       string                 `json:"kind" validate:"required"`
	EntityID   string                 `json:"entity_id" validate:"required"`
	EntityName string                 `json:"entity_name" validate:"required"`
	Confidence float64                `json:"confidence" validate:"min=0,max=1"`
	Relevance  float64                `json:"relevance" validate:"min=0,max=1"`
	DetectedAt time.Time              `json:"detected_at"`
	Source     string                 `json:"source"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

func (d SignalInstanceDTO) ToInstance() signals.Instance {
	return signals.Instance{
		Kind:       d.Kind,
		EntityID:   d.EntityID,
		EntityName: d.EntityName,
		Confidence: d.Confidence,
		Relevance:  d.Relevance,
		DetectedAt: d.DetectedAt,
		Source:     d.Source,
		Metadata:   d.Metadata,
	}
}

type IngestSignalsRequest struct {
	WorkspaceID string              `json:"workspace_id" validate:"required"`
	Signals     []SignalInstanceDTO `json:"signals" validate:"required,min=1,dive"`
}

type IngestSignalsResponse struct {
	Accepted int `json:"accepted"`
}

type FilterSignalsRequest struct {
	WorkspaceID   string              `json:"workspace_id" validate:"required"`
	Signals       []SignalInstanceDTO `json:"signals" validate:"required,dive"`
	MinConfidence float64             `json:"min_confidence" validate:"min=0,max=1"`
	MinRelevance  float64             `json:"min_relevance" validate:"min=0,max=1"`
	PriorityKinds []string            `json:"priority_kinds,omitempty"`
}

type FilterSignalsResponse struct {
	Configured bool               `json:"configured"`
	Signals    []signals.Instance `json:"signals"`
}

// PublishSignalBatchMessage is the internal queue payload for one ingested
// signal batch.
type PublishSignalBatchMessage struct {
	WorkspaceID string              `json:"workspace_id"`
	Signals     []SignalInstanceDTO `json:"signals"`
}

type SignalDefinitionResponse struct {
	Kind             string   `json:"kind"`
	DisplayName      string   `json:"display_name"`
	Category         string   `json:"category"`
	BaseWeight       float64  `json:"base_weight"`
	RelevanceFactors []string `json:"relevance_factors"`
	DataSources      []string `json:"data_sources"`
	DecayWindowDays  int      `json:"decay_window_days"`
	Insight          string   `json:"insight"`
}
