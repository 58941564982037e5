package mapper

import (
	"encoding/json"
	"time"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/model"
	"sales-intel-be/pkg/verticals"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type VerticalConfigMapper struct{}

func NewVerticalConfigMapper() *VerticalConfigMapper {
	return &VerticalConfigMapper{}
}

func (m *VerticalConfigMapper) ToEntity(v *model.VerticalConfig) (*entity.VerticalConfig, error) {
	if v == nil {
		return nil, nil
	}

	var cfg verticals.Config
	if len(v.Payload) > 0 {
		if err := json.Unmarshal(v.Payload, &cfg); err != nil {
			return nil, err
		}
	}

	var deletedAt *time.Time
	if v.DeletedAt.Valid {
		t := v.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !v.UpdatedAt.IsZero() {
		t := v.UpdatedAt
		updatedAt = &t
	}

	return &entity.VerticalConfig{
		Id:          v.Id,
		Vertical:    v.Vertical,
		SubVertical: v.SubVertical,
		Region:      v.Region,
		Config:      cfg,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   v.DeletedAt.Valid,
	}, nil
}

func (m *VerticalConfigMapper) ToModel(v *entity.VerticalConfig) (*model.VerticalConfig, error) {
	if v == nil {
		return nil, nil
	}

	payload, err := json.Marshal(v.Config)
	if err != nil {
		return nil, err
	}

	var deletedAt gorm.DeletedAt
	if v.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *v.DeletedAt, Valid: true}
	} else if v.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if v.UpdatedAt != nil {
		updatedAt = *v.UpdatedAt
	}

	return &model.VerticalConfig{
		Id:          v.Id,
		Vertical:    v.Vertical,
		SubVertical: v.SubVertical,
		Region:      v.Region,
		Payload:     datatypes.JSON(payload),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}, nil
}

func (m *VerticalConfigMapper) ToEntities(configs []*model.VerticalConfig) ([]*entity.VerticalConfig, error) {
	entities := make([]*entity.VerticalConfig, len(configs))
	for i, v := range configs {
		e, err := m.ToEntity(v)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}
