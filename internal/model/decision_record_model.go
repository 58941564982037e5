package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DecisionRecord struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	WorkspaceId string         `gorm:"type:varchar(100);index"`
	EntityId    string         `gorm:"type:varchar(100);not null;index"`
	EntityName  string         `gorm:"type:varchar(255);not null"`
	Vertical    string         `gorm:"type:varchar(100);not null"`
	SubVertical string         `gorm:"type:varchar(100)"`
	Composite   float64        `gorm:"not null"`
	Grade       string         `gorm:"type:varchar(10);not null;index"`
	SignalCount int            `gorm:"not null;default:0"`
	Payload     datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (DecisionRecord) TableName() string {
	return "decision_records"
}
