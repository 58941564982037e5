package implementation

import (
	"context"
	"errors"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/mapper"
	"sales-intel-be/internal/model"
	"sales-intel-be/internal/repository/contract"
	"sales-intel-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VerticalConfigRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VerticalConfigMapper
}

func NewVerticalConfigRepository(db *gorm.DB) contract.VerticalConfigRepository {
	return &VerticalConfigRepositoryImpl{
		db:     db,
		mapper: mapper.NewVerticalConfigMapper(),
	}
}

func (r *VerticalConfigRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *VerticalConfigRepositoryImpl) Create(ctx context.Context, cfg *entity.VerticalConfig) error {
	m, err := r.mapper.ToModel(cfg)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*cfg = *e
	return nil
}

func (r *VerticalConfigRepositoryImpl) Update(ctx context.Context, cfg *entity.VerticalConfig) error {
	m, err := r.mapper.ToModel(cfg)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*cfg = *e
	return nil
}

func (r *VerticalConfigRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.VerticalConfig{}, id).Error
}

func (r *VerticalConfigRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VerticalConfig, error) {
	var m model.VerticalConfig
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *VerticalConfigRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.VerticalConfig, error) {
	var models []*model.VerticalConfig
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models)
}
