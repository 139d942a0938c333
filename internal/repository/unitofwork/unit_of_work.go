package unitofwork

import (
	"context"

	"rag-docsync-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DatasetRepository() contract.DatasetRepository
	DocumentRepository() contract.DocumentRepository
	ChunkRepository() contract.ChunkRepository
}
