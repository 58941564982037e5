package contract

import (
	"context"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/repository/specification"
)

type DecisionRepository interface {
	Create(ctx context.Context, record *entity.DecisionRecord) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DecisionRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DecisionRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
