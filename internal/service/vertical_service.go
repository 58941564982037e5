package service

import (
	"context"
	"time"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/specification"
	"sales-intel-be/internal/repository/unitofwork"
	"sales-intel-be/pkg/verticals"

	"github.com/google/uuid"
)

type IVerticalService interface {
	// Fetch satisfies the vertical config source contract consumed by the
	// cached provider.
	Fetch(ctx context.Context, key verticals.Key) (*verticals.Config, error)
	Upsert(ctx context.Context, key verticals.Key, cfg verticals.Config) error
}

type verticalService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   *verticals.Provider
	logger     logger.ILogger
}

func NewVerticalService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) *verticalService {
	return &verticalService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

// BindProvider wires the cached provider back so Upsert can invalidate it.
// Called once during bootstrap after the provider is constructed around this
// service.
func (s *verticalService) BindProvider(p *verticals.Provider) {
	s.provider = p
}

func (s *verticalService) Fetch(ctx context.Context, key verticals.Key) (*verticals.Config, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	cfg, err := uow.VerticalConfigRepository().FindOne(ctx, specification.ByVerticalKey{Key: key})
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, nil
	}
	c := cfg.Config
	return &c, nil
}

func (s *verticalService) Upsert(ctx context.Context, key verticals.Key, cfg verticals.Config) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.VerticalConfigRepository()

	existing, err := repo.FindOne(ctx, specification.ByVerticalKey{Key: key})
	if err != nil {
		return err
	}

	if existing == nil {
		record := entity.VerticalConfig{
			Id:          uuid.New(),
			Vertical:    key.Vertical,
			SubVertical: key.SubVertical,
			Region:      key.Region,
			Config:      cfg,
			CreatedAt:   time.Now(),
		}
		if err := repo.Create(ctx, &record); err != nil {
			return err
		}
	} else {
		existing.Config = cfg
		if err := repo.Update(ctx, existing); err != nil {
			return err
		}
	}

	if s.provider != nil {
		s.provider.Invalidate(key)
	}
	s.logger.Info("VerticalService", "vertical config upserted", map[string]interface{}{
		"key": key.String(),
	})
	return nil
}
