package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"rag-docsync-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newBatchFixture() (*fakeUnitOfWork, *fakeRemote, IDocumentBatchService) {
	uow := newFakeUnitOfWork()
	remote := &fakeRemote{}
	svc := NewDocumentBatchService(uow.factory(), remote, nil, nil)
	return uow, remote, svc
}

func TestBatchDeleteMixedOutcomes(t *testing.T) {
	uow, remote, svc := newBatchFixture()

	dataset := &entity.Dataset{Id: uuid.New(), Name: "kb", RemoteId: "ds-remote"}
	otherDataset := &entity.Dataset{Id: uuid.New(), Name: "other"}
	uow.datasets.items = append(uow.datasets.items, dataset, otherDataset)

	uploaded := &entity.Document{
		Id:        uuid.New(),
		DatasetId: dataset.Id,
		Name:      "uploaded",
		RemoteId:  "remote-1",
	}
	foreign := &entity.Document{
		Id:        uuid.New(),
		DatasetId: otherDataset.Id,
		Name:      "foreign",
	}
	uow.documents.items = append(uow.documents.items, uploaded, foreign)
	uow.chunks.chunksByDocument[uploaded.Id] = []*entity.Chunk{{Id: uuid.New()}}

	missingId := uuid.New()

	result, err := svc.BatchDelete(context.Background(), dataset.Id,
		[]uuid.UUID{uploaded.Id, missingId, foreign.Id})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.DeletedCount)
	assert.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors, fmt.Sprintf("Document %s not found", missingId))
	assert.Contains(t, result.Errors, fmt.Sprintf("Document %s not belongs to this dataset", foreign.Id))

	// The uploaded document's remote copy was removed and chunks cleaned up.
	assert.Equal(t, []string{"remote-1"}, remote.deletedRemote)
	assert.NotContains(t, uow.chunks.chunksByDocument, uploaded.Id)
	assert.Contains(t, uow.documents.deleted, uploaded.Id)
	// The foreign document survived.
	assert.NotContains(t, uow.documents.deleted, foreign.Id)
}

func TestBatchDeleteRemoteFailureStillDeletesLocally(t *testing.T) {
	uow, remote, svc := newBatchFixture()

	dataset := &entity.Dataset{Id: uuid.New(), Name: "kb", RemoteId: "ds-remote"}
	uow.datasets.items = append(uow.datasets.items, dataset)

	doc := &entity.Document{
		Id:        uuid.New(),
		DatasetId: dataset.Id,
		Name:      "doc",
		RemoteId:  "remote-1",
	}
	uow.documents.items = append(uow.documents.items, doc)

	remote.deleteErr = errors.New("remote unreachable")

	result, err := svc.BatchDelete(context.Background(), dataset.Id, []uuid.UUID{doc.Id})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.DeletedCount)
	assert.Empty(t, result.Errors)
	assert.Contains(t, uow.documents.deleted, doc.Id)
}

func TestBatchDeleteNeverUploadedSkipsRemote(t *testing.T) {
	uow, remote, svc := newBatchFixture()

	dataset := &entity.Dataset{Id: uuid.New(), Name: "kb", RemoteId: "ds-remote"}
	uow.datasets.items = append(uow.datasets.items, dataset)

	doc := &entity.Document{
		Id:        uuid.New(),
		DatasetId: dataset.Id,
		Name:      "local-only",
	}
	uow.documents.items = append(uow.documents.items, doc)

	result, err := svc.BatchDelete(context.Background(), dataset.Id, []uuid.UUID{doc.Id})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.DeletedCount)
	assert.Empty(t, remote.deletedRemote)
}

func TestBatchDeleteChunkCleanupFailureRecordsError(t *testing.T) {
	uow, _, svc := newBatchFixture()

	dataset := &entity.Dataset{Id: uuid.New(), Name: "kb"}
	uow.datasets.items = append(uow.datasets.items, dataset)

	doc := &entity.Document{
		Id:        uuid.New(),
		DatasetId: dataset.Id,
		Name:      "stuck",
	}
	uow.documents.items = append(uow.documents.items, doc)
	uow.chunks.deleteErr = errors.New("disk full")

	result, err := svc.BatchDelete(context.Background(), dataset.Id, []uuid.UUID{doc.Id})

	assert.NoError(t, err)
	assert.Equal(t, 0, result.DeletedCount)
	if assert.Len(t, result.Errors, 1) {
		assert.Contains(t, result.Errors[0], "chunk cleanup failed")
	}
	assert.Empty(t, uow.documents.deleted)
}

func TestBatchDeleteEmptyBatch(t *testing.T) {
	uow, _, svc := newBatchFixture()

	dataset := &entity.Dataset{Id: uuid.New(), Name: "kb"}
	uow.datasets.items = append(uow.datasets.items, dataset)

	result, err := svc.BatchDelete(context.Background(), dataset.Id, nil)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.DeletedCount)
	assert.Empty(t, result.Errors)
}
