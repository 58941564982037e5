package mapper

import (
	"encoding/json"
	"time"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/model"
	"sales-intel-be/pkg/scoring"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DecisionMapper struct{}

func NewDecisionMapper() *DecisionMapper {
	return &DecisionMapper{}
}

func (m *DecisionMapper) ToEntity(d *model.DecisionRecord) (*entity.DecisionRecord, error) {
	if d == nil {
		return nil, nil
	}

	var decision scoring.Decision
	if len(d.Payload) > 0 {
		if err := json.Unmarshal(d.Payload, &decision); err != nil {
			return nil, err
		}
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.DecisionRecord{
		Id:          d.Id,
		UserId:      d.UserId,
		WorkspaceId: d.WorkspaceId,
		EntityId:    d.EntityId,
		EntityName:  d.EntityName,
		Vertical:    d.Vertical,
		SubVertical: d.SubVertical,
		Composite:   d.Composite,
		Grade:       d.Grade,
		SignalCount: d.SignalCount,
		Decision:    decision,
		CreatedAt:   d.CreatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   d.DeletedAt.Valid,
	}, nil
}

func (m *DecisionMapper) ToModel(d *entity.DecisionRecord) (*model.DecisionRecord, error) {
	if d == nil {
		return nil, nil
	}

	payload, err := json.Marshal(d.Decision)
	if err != nil {
		return nil, err
	}

	var deletedAt gorm.DeletedAt
	if d.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	} else if d.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	return &model.DecisionRecord{
		Id:          d.Id,
		UserId:      d.UserId,
		WorkspaceId: d.WorkspaceId,
		EntityId:    d.EntityId,
		EntityName:  d.EntityName,
		Vertical:    d.Vertical,
		SubVertical: d.SubVertical,
		Composite:   d.Composite,
		Grade:       d.Grade,
		SignalCount: d.SignalCount,
		Payload:     datatypes.JSON(payload),
		CreatedAt:   d.CreatedAt,
		DeletedAt:   deletedAt,
	}, nil
}

func (m *DecisionMapper) ToEntities(records []*model.DecisionRecord) ([]*entity.DecisionRecord, error) {
	entities := make([]*entity.DecisionRecord, len(records))
	for i, d := range records {
		e, err := m.ToEntity(d)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}
