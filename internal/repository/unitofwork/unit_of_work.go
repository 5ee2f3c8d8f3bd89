package unitofwork

import (
	"context"

	"template-builder-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	TemplateRepository() contract.TemplateRepository
}
