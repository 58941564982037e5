package unitofwork

import (
	"context"

	"sales-intel-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	VerticalConfigRepository() contract.VerticalConfigRepository
	DecisionRepository() contract.DecisionRepository
}
