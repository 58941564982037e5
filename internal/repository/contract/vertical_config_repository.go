package contract

import (
	"context"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/repository/specification"

	"github.com/google/uuid"
)

type VerticalConfigRepository interface {
	Create(ctx context.Context, cfg *entity.VerticalConfig) error
	Update(ctx context.Context, cfg *entity.VerticalConfig) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VerticalConfig, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.VerticalConfig, error)
}
