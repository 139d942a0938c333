package service

import (
	"context"
	"errors"
	"sync"

	"rag-docsync-be/internal/entity"
	"rag-docsync-be/internal/repository/contract"
	"rag-docsync-be/internal/repository/specification"
	"rag-docsync-be/internal/repository/unitofwork"
	"rag-docsync-be/pkg/ragflow"

	"github.com/google/uuid"
)

// In-memory repository fakes. Spec matching mirrors the SQL the real
// specifications generate, switched on the concrete spec type.

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeUnitOfWork struct {
	datasets  *fakeDatasetRepo
	documents *fakeDocumentRepo
	chunks    *fakeChunkRepo
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		datasets:  &fakeDatasetRepo{},
		documents: &fakeDocumentRepo{},
		chunks:    &fakeChunkRepo{chunksByDocument: map[uuid.UUID][]*entity.Chunk{}},
	}
}

func (u *fakeUnitOfWork) factory() unitofwork.RepositoryFactory {
	return &fakeFactory{uow: u}
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) DatasetRepository() contract.DatasetRepository   { return u.datasets }
func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository { return u.documents }
func (u *fakeUnitOfWork) ChunkRepository() contract.ChunkRepository       { return u.chunks }

func matchDataset(d *entity.Dataset, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if d.Id != s.ID {
				return false
			}
		}
	}
	return true
}

func matchDocument(d *entity.Document, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if d.Id != s.ID {
				return false
			}
		case specification.ByDatasetID:
			if d.DatasetId != s.DatasetID {
				return false
			}
		case specification.ByStatus:
			if string(d.Status) != s.Status {
				return false
			}
		case specification.WithRemoteId:
			if d.RemoteId == "" {
				return false
			}
		case specification.WithoutRemoteId:
			if d.RemoteId != "" {
				return false
			}
		}
	}
	return true
}

type fakeDatasetRepo struct {
	items   []*entity.Dataset
	findErr error
}

func (r *fakeDatasetRepo) Create(ctx context.Context, d *entity.Dataset) error {
	r.items = append(r.items, d)
	return nil
}

func (r *fakeDatasetRepo) Update(ctx context.Context, d *entity.Dataset) error { return nil }

func (r *fakeDatasetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, d := range r.items {
		if d.Id == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeDatasetRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Dataset, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, d := range r.items {
		if matchDataset(d, specs) {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDatasetRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Dataset, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := []*entity.Dataset{}
	for _, d := range r.items {
		if matchDataset(d, specs) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDatasetRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type fakeDocumentRepo struct {
	mu        sync.Mutex
	items     []*entity.Document
	findErr   error
	updateErr error
	updated   []*entity.Document
	deleted   []uuid.UUID
	deleteErr error
}

func (r *fakeDocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	r.items = append(r.items, d)
	return nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, d *entity.Document) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.mu.Lock()
	r.updated = append(r.updated, d)
	r.mu.Unlock()
	return nil
}

// updatedCount is safe to poll from a test goroutine while a consumer runs.
func (r *fakeDocumentRepo) updatedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.updated)
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for i, d := range r.items {
		if d.Id == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			break
		}
	}
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, d := range r.items {
		if matchDocument(d, specs) {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := []*entity.Document{}
	for _, d := range r.items {
		if matchDocument(d, specs) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type fakeChunkRepo struct {
	chunksByDocument map[uuid.UUID][]*entity.Chunk
	replaceErr       error
	deleteErr        error
}

func (r *fakeChunkRepo) ReplaceForDocument(ctx context.Context, documentId uuid.UUID, chunks []*entity.Chunk) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.chunksByDocument[documentId] = chunks
	return nil
}

func (r *fakeChunkRepo) DeleteAllByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.chunksByDocument, documentId)
	return nil
}

func (r *fakeChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error) {
	out := []*entity.Chunk{}
	for _, spec := range specs {
		if s, ok := spec.(specification.ByDocumentID); ok {
			out = append(out, r.chunksByDocument[s.DocumentID]...)
		}
	}
	return out, nil
}

func (r *fakeChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

// fakeRemote is a scriptable ragflow.Client.
type fakeRemote struct {
	uploadResult *ragflow.UploadResult
	uploadErr    error
	uploadCalls  int

	parseErr   error
	parseCalls int

	stopErr error

	status    *ragflow.ParseStatus
	statusErr error

	chunks    map[string][]ragflow.ChunkPayload
	chunksErr error

	deleteErr     error
	deletedRemote []string
}

func (f *fakeRemote) Upload(ctx context.Context, datasetRemoteId, filePath, originalFilename string) (*ragflow.UploadResult, error) {
	f.uploadCalls++
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	if f.uploadResult != nil {
		return f.uploadResult, nil
	}
	return &ragflow.UploadResult{Data: []ragflow.UploadedDocument{}}, nil
}

func (f *fakeRemote) ParseChunks(ctx context.Context, datasetRemoteId string, documentRemoteIds []string) (map[string]interface{}, error) {
	f.parseCalls++
	if f.parseErr != nil {
		return nil, f.parseErr
	}
	return map[string]interface{}{"code": float64(0)}, nil
}

func (f *fakeRemote) StopParsing(ctx context.Context, datasetRemoteId string, documentRemoteIds []string) (map[string]interface{}, error) {
	if f.stopErr != nil {
		return nil, f.stopErr
	}
	return map[string]interface{}{"code": float64(0)}, nil
}

func (f *fakeRemote) GetParseStatus(ctx context.Context, datasetRemoteId, documentRemoteId string) (*ragflow.ParseStatus, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	if f.status == nil {
		return nil, errors.New("no scripted status")
	}
	return f.status, nil
}

func (f *fakeRemote) ListChunks(ctx context.Context, datasetRemoteId, documentRemoteId string) ([]ragflow.ChunkPayload, error) {
	if f.chunksErr != nil {
		return nil, f.chunksErr
	}
	return f.chunks[documentRemoteId], nil
}

func (f *fakeRemote) Delete(ctx context.Context, datasetRemoteId string, documentRemoteIds []string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedRemote = append(f.deletedRemote, documentRemoteIds...)
	return nil
}

// fakePublisher captures refresh requests.
type fakePublisher struct {
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, payload)
	return nil
}
