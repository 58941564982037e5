package entity

import (
	"time"

	"sales-intel-be/pkg/verticals"

	"github.com/google/uuid"
)

type VerticalConfig struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Vertical    string
	SubVertical string
	Region      string
	Config      verticals.Config
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

func (e *VerticalConfig) Key() verticals.Key {
	return verticals.Key{
		Vertical:    e.Vertical,
		SubVertical: e.SubVertical,
		Region:      e.Region,
	}
}
