package service

import (
	"context"
	"errors"
	"testing"

	"rag-docsync-be/internal/entity"
	"rag-docsync-be/pkg/ragflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newOrchestratorFixture() (*fakeUnitOfWork, *fakeRemote, ISyncOrchestratorService) {
	uow := newFakeUnitOfWork()
	remote := &fakeRemote{}
	retrySvc := NewDocumentRetryService(uow.factory(), remote, nil, nil, nil, nil)
	svc := NewSyncOrchestratorService(uow.factory(), remote, retrySvc, nil)
	return uow, remote, svc
}

func TestRetryAllFailedFiltersEligibleDocuments(t *testing.T) {
	uow, remote, svc := newOrchestratorFixture()

	dataset := &entity.Dataset{Id: uuid.New(), Name: "kb", RemoteId: "ds-remote"}
	uow.datasets.items = append(uow.datasets.items, dataset)

	needsUpload := &entity.Document{
		Id:        uuid.New(),
		DatasetId: dataset.Id,
		Name:      "needs-upload",
		FilePath:  "/data/a.pdf",
		Status:    entity.StatusSyncFailed,
	}
	alreadyUploaded := &entity.Document{
		Id:        uuid.New(),
		DatasetId: dataset.Id,
		Name:      "uploaded",
		FilePath:  "/data/b.pdf",
		RemoteId:  "remote-b",
	}
	noFile := &entity.Document{
		Id:        uuid.New(),
		DatasetId: dataset.Id,
		Name:      "fileless",
	}
	uow.documents.items = append(uow.documents.items, needsUpload, alreadyUploaded, noFile)

	remote.uploadResult = &ragflow.UploadResult{
		Data: []ragflow.UploadedDocument{{Id: "fresh-remote"}},
	}

	result, err := svc.RetryAllFailed(context.Background(), dataset.Id)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.RetriedCount)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 1, remote.uploadCalls)
	assert.Equal(t, "fresh-remote", needsUpload.RemoteId)
	assert.Equal(t, "remote-b", alreadyUploaded.RemoteId)
}

func TestRetryAllFailedAccumulatesErrors(t *testing.T) {
	uow, remote, svc := newOrchestratorFixture()

	dataset := &entity.Dataset{Id: uuid.New(), Name: "kb", RemoteId: "ds-remote"}
	uow.datasets.items = append(uow.datasets.items, dataset)

	first := &entity.Document{
		Id:        uuid.New(),
		DatasetId: dataset.Id,
		Name:      "first",
		FilePath:  "/data/first.pdf",
	}
	second := &entity.Document{
		Id:        uuid.New(),
		DatasetId: dataset.Id,
		Name:      "second",
		FilePath:  "/data/second.pdf",
	}
	uow.documents.items = append(uow.documents.items, first, second)

	remote.uploadErr = errors.New("remote rejecting uploads")

	result, err := svc.RetryAllFailed(context.Background(), dataset.Id)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.RetriedCount)
	// One failure never aborts the pass: both documents were attempted.
	assert.Len(t, result.Errors, 2)
	assert.Equal(t, 2, remote.uploadCalls)
	assert.Equal(t, entity.StatusSyncFailed, first.Status)
	assert.Equal(t, entity.StatusSyncFailed, second.Status)
}

func TestRetryAllFailedMissingDataset(t *testing.T) {
	_, _, svc := newOrchestratorFixture()

	result, err := svc.RetryAllFailed(context.Background(), uuid.New())

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestSyncAllChunksReplacesLocalChunks(t *testing.T) {
	uow, remote, svc := newOrchestratorFixture()

	dataset := &entity.Dataset{Id: uuid.New(), Name: "kb", RemoteId: "ds-remote"}
	uow.datasets.items = append(uow.datasets.items, dataset)

	uploaded := &entity.Document{
		Id:        uuid.New(),
		DatasetId: dataset.Id,
		Name:      "uploaded",
		RemoteId:  "remote-1",
	}
	neverUploaded := &entity.Document{
		Id:        uuid.New(),
		DatasetId: dataset.Id,
		Name:      "local-only",
	}
	uow.documents.items = append(uow.documents.items, uploaded, neverUploaded)

	remote.chunks = map[string][]ragflow.ChunkPayload{
		"remote-1": {
			{RemoteId: "c1", Content: "first part", Position: 0},
			{RemoteId: "c2", Content: "second part", Position: 1},
		},
	}

	result, err := svc.SyncAllChunks(context.Background(), dataset.Id)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.SyncedCount)
	assert.Empty(t, result.Errors)

	stored := uow.chunks.chunksByDocument[uploaded.Id]
	if assert.Len(t, stored, 2) {
		assert.Equal(t, "c1", stored[0].RemoteId)
		assert.Equal(t, uploaded.Id, stored[0].DocumentId)
	}
	if assert.NotNil(t, uploaded.ChunkCount) {
		assert.Equal(t, 2, *uploaded.ChunkCount)
	}
	assert.NotNil(t, uploaded.LastSyncTime)

	// Documents without a remote id are not polled.
	assert.NotContains(t, uow.chunks.chunksByDocument, neverUploaded.Id)
}

func TestSyncAllChunksListingFailureContinues(t *testing.T) {
	uow, remote, svc := newOrchestratorFixture()

	dataset := &entity.Dataset{Id: uuid.New(), Name: "kb", RemoteId: "ds-remote"}
	uow.datasets.items = append(uow.datasets.items, dataset)

	doc := &entity.Document{
		Id:        uuid.New(),
		DatasetId: dataset.Id,
		Name:      "broken",
		RemoteId:  "remote-1",
	}
	uow.documents.items = append(uow.documents.items, doc)

	remote.chunksErr = errors.New("listing unavailable")

	result, err := svc.SyncAllChunks(context.Background(), dataset.Id)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.SyncedCount)
	if assert.Len(t, result.Errors, 1) {
		assert.Contains(t, result.Errors[0], "broken")
	}
}

func TestSyncAllChunksRequiresRemoteDataset(t *testing.T) {
	uow, _, svc := newOrchestratorFixture()

	dataset := &entity.Dataset{Id: uuid.New(), Name: "local-only"}
	uow.datasets.items = append(uow.datasets.items, dataset)

	result, err := svc.SyncAllChunks(context.Background(), dataset.Id)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "local-only")
}
