package contract

import (
	"context"

	"rag-docsync-be/internal/entity"
	"rag-docsync-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChunkRepository interface {
	// ReplaceForDocument atomically swaps the document's chunk set for the
	// given one. Chunks are remote-derived, so sync always overwrites.
	ReplaceForDocument(ctx context.Context, documentId uuid.UUID, chunks []*entity.Chunk) error
	DeleteAllByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
