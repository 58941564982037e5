package dto

import (
	"time"

	"sales-intel-be/pkg/scoring"
	"sales-intel-be/pkg/signals"

	"github.com/google/uuid"
)

type ScoreEntityRequest struct {
	WorkspaceID string              `json:"workspace_id" validate:"required"`
	EntityID    string              `json:"entity_id" validate:"required"`
	EntityName  string              `json:"entity_name" validate:"required"`
	Industry    string              `json:"industry"`
	Headcount   int                 `json:"headcount"`
	Size        string              `json:"size"`
	City        string              `json:"city"`
	Website     string              `json:"website"`
	Signals     []SignalInstanceDTO `json:"signals" validate:"dive"`

	Enrichment *scoring.EnrichmentSummary `json:"enrichment,omitempty"`
	Behavior   *scoring.BehaviorSummary   `json:"behavior,omitempty"`
}

type ScoreEntityResponse struct {
	Decision scoring.Decision `json:"decision"`
}

type DecisionRecordResponse struct {
	Id          uuid.UUID `json:"id"`
	EntityId    string    `json:"entity_id"`
	EntityName  string    `json:"entity_name"`
	Vertical    string    `json:"vertical"`
	SubVertical string    `json:"sub_vertical"`
	Composite   float64   `json:"composite"`
	Grade       string    `json:"grade"`
	SignalCount int       `json:"signal_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// DiscoveryReportEntry is one ranked prospect line in a discovery report.
type DiscoveryReportEntry struct {
	Rank       int                `json:"rank"`
	EntityID   string             `json:"entity_id"`
	EntityName string             `json:"entity_name"`
	Composite  float64            `json:"composite"`
	Grade      string             `json:"grade"`
	Insight    string             `json:"insight,omitempty"`
	Signals    []signals.Instance `json:"signals,omitempty"`
}

type DiscoveryReportResponse struct {
	Vertical    string                 `json:"vertical"`
	SubVertical string                 `json:"sub_vertical"`
	Region      string                 `json:"region"`
	GeneratedAt time.Time              `json:"generated_at"`
	Entries     []DiscoveryReportEntry `json:"entries"`
}
