package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type VerticalConfig struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Vertical    string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_vertical_config_key"`
	SubVertical string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_vertical_config_key"`
	Region      string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_vertical_config_key"`
	Payload     datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (VerticalConfig) TableName() string {
	return "vertical_configs"
}
