package service

import (
	"context"
	"testing"

	"rag-docsync-be/internal/dto"
	"rag-docsync-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDocumentCreateStartsPending(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewDocumentService(uow.factory())

	dataset := &entity.Dataset{Id: uuid.New(), Name: "kb"}
	uow.datasets.items = append(uow.datasets.items, dataset)

	created, err := svc.Create(context.Background(), dataset.Id, &dto.CreateDocumentRequest{
		Name:     "handbook",
		FileName: "handbook.pdf",
		FilePath: "/data/handbook.pdf",
	})
	assert.NoError(t, err)

	stored := uow.documents.items[0]
	assert.Equal(t, created.Id, stored.Id)
	assert.Equal(t, entity.StatusPending, stored.Status)
	assert.Equal(t, "", stored.RemoteId)
}

func TestDocumentCreateMissingDataset(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewDocumentService(uow.factory())

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateDocumentRequest{
		Name:     "orphan",
		FileName: "orphan.pdf",
	})
	assert.Error(t, err)
}

func TestDocumentShowScopedToDataset(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewDocumentService(uow.factory())

	doc := &entity.Document{Id: uuid.New(), Name: "handbook", Status: entity.StatusCompleted}
	dataset := seedPair(uow, doc)

	shown, err := svc.Show(context.Background(), dataset.Id, doc.Id)
	assert.NoError(t, err)
	if assert.NotNil(t, shown) {
		assert.Equal(t, "COMPLETED", shown.Status)
	}

	// Same document id under a different dataset is invisible.
	other, err := svc.Show(context.Background(), uuid.New(), doc.Id)
	assert.NoError(t, err)
	assert.Nil(t, other)
}

func TestDocumentGetChunks(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewDocumentService(uow.factory())

	doc := &entity.Document{Id: uuid.New(), Name: "handbook"}
	dataset := seedPair(uow, doc)

	uow.chunks.chunksByDocument[doc.Id] = []*entity.Chunk{
		{Id: uuid.New(), DocumentId: doc.Id, Content: "part one", Position: 0, Keywords: []string{"a"}},
		{Id: uuid.New(), DocumentId: doc.Id, Content: "part two", Position: 1},
	}

	chunks, err := svc.GetChunks(context.Background(), dataset.Id, doc.Id)
	assert.NoError(t, err)
	if assert.Len(t, chunks, 2) {
		assert.Equal(t, "part one", chunks[0].Content)
	}
}

func TestDocumentGetChunksMissingDocument(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewDocumentService(uow.factory())

	dataset := &entity.Dataset{Id: uuid.New(), Name: "kb"}
	uow.datasets.items = append(uow.datasets.items, dataset)

	_, err := svc.GetChunks(context.Background(), dataset.Id, uuid.New())
	assert.Error(t, err)
}
