package unitofwork

import "context"

// RepositoryFactory hands the template and lint services a UnitOfWork
// bound to the caller's context
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
