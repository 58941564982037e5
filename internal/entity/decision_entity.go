package entity

import (
	"time"

	"sales-intel-be/pkg/scoring"

	"github.com/google/uuid"
)

// DecisionRecord is the audit trail entry for one scoring run.
type DecisionRecord struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId      uuid.UUID `gorm:"type:uuid;index"`
	WorkspaceId string
	EntityId    string
	EntityName  string
	Vertical    string
	SubVertical string
	Composite   float64
	Grade       string
	SignalCount int
	Decision    scoring.Decision
	CreatedAt   time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
