package unitofwork

import "context"

// RepositoryFactory hands out request-scoped units of work.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
