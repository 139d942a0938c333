package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rag-docsync-be/internal/dto"
	"rag-docsync-be/internal/entity"
	"rag-docsync-be/internal/pkg/logger"
	"rag-docsync-be/internal/repository/specification"
	"rag-docsync-be/internal/repository/unitofwork"
	"rag-docsync-be/pkg/events"
	pktNats "rag-docsync-be/pkg/nats"
	"rag-docsync-be/pkg/ragflow"
	"rag-docsync-be/pkg/store"

	"github.com/google/uuid"
)

type IDocumentRetryService interface {
	// ShouldRetry gates bulk retry: true only when an upload is actually
	// required and a stored file exists to upload.
	ShouldRetry(document *entity.Document) bool

	// ProcessRetry uploads the stored file and reconciles local state. It
	// re-checks the gate itself, so a caller bypassing ShouldRetry cannot
	// double-upload. On a remote failure the document transitions to
	// SYNC_FAILED and the returned error embeds the document name.
	ProcessRetry(ctx context.Context, dataset *entity.Dataset, document *entity.Document) error

	// Retry is the single-document entry point working from ids.
	Retry(ctx context.Context, datasetId, documentId uuid.UUID) (*dto.SyncResult, error)
}

type documentRetryService struct {
	uowFactory       unitofwork.RepositoryFactory
	remote           ragflow.Client
	publisherService IPublisherService
	locks            *store.LockStore
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewDocumentRetryService(
	uowFactory unitofwork.RepositoryFactory,
	remote ragflow.Client,
	publisherService IPublisherService,
	locks *store.LockStore,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IDocumentRetryService {
	return &documentRetryService{
		uowFactory:       uowFactory,
		remote:           remote,
		publisherService: publisherService,
		locks:            locks,
		eventPublisher:   eventPublisher,
		logger:           sysLogger,
	}
}

func (s *documentRetryService) ShouldRetry(document *entity.Document) bool {
	return document.NeedsUpload()
}

func (s *documentRetryService) ProcessRetry(ctx context.Context, dataset *entity.Dataset, document *entity.Document) error {
	if document.IsUploaded() {
		return fmt.Errorf("document %q already has remote id %s", document.Name, document.RemoteId)
	}
	if document.FilePath == "" {
		return fmt.Errorf("document %q has no stored file to upload", document.Name)
	}
	if !dataset.HasRemote() {
		return fmt.Errorf("dataset %q has no remote counterpart", dataset.Name)
	}

	result, err := s.remote.Upload(ctx, dataset.RemoteId, document.FilePath, document.FileName)
	if err != nil {
		return s.handleUploadError(ctx, document, err)
	}

	applyUploadResult(document, result)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return err
	}

	s.publishEvent(ctx, events.DocumentUploaded(document.Id, document.Name, document.RemoteId))
	s.requestStatusRefresh(ctx, document.Id)

	return nil
}

func (s *documentRetryService) Retry(ctx context.Context, datasetId, documentId uuid.UUID) (*dto.SyncResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	dataset, err := uow.DatasetRepository().FindOne(ctx, specification.ByID{ID: datasetId})
	if err != nil {
		return nil, err
	}
	if dataset == nil {
		return dto.SyncFailure(fmt.Sprintf("dataset %s not found", datasetId)), nil
	}

	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: documentId},
		specification.ByDatasetID{DatasetID: datasetId},
	)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return dto.SyncFailure(fmt.Sprintf("document %s not found in dataset %s", documentId, datasetId)), nil
	}

	if !s.ShouldRetry(document) {
		if document.IsUploaded() {
			return dto.SyncFailure(fmt.Sprintf("document %q is already uploaded", document.Name)), nil
		}
		return dto.SyncFailure(fmt.Sprintf("document %q has no stored file to upload", document.Name)), nil
	}

	if s.locks != nil {
		if !s.locks.Acquire(ctx, document.Id) {
			return dto.SyncFailure(fmt.Sprintf("document %q has another sync operation in flight", document.Name)), nil
		}
		defer s.locks.Release(ctx, document.Id)
	}

	if err := s.ProcessRetry(ctx, dataset, document); err != nil {
		return dto.SyncFailure(err.Error()), nil
	}

	return dto.SyncSuccess(fmt.Sprintf("document %q uploaded", document.Name), map[string]interface{}{
		"remote_id": document.RemoteId,
	}), nil
}

// handleUploadError records the failure on the document and wraps the cause
// in a message fit for surfacing to the caller.
func (s *documentRetryService) handleUploadError(ctx context.Context, document *entity.Document, cause error) error {
	document.Status = entity.StatusSyncFailed
	msg := cause.Error()
	document.ProgressMsg = &msg

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().Update(ctx, document); err != nil && s.logger != nil {
		s.logger.Error("sync", "failed to persist SYNC_FAILED status", map[string]interface{}{
			"document_id": document.Id,
			"error":       err.Error(),
		})
	}

	s.publishEvent(ctx, events.DocumentSyncFailed(document.Id, document.Name, cause.Error()))

	return fmt.Errorf("failed to upload document %q: %w", document.Name, cause)
}

// applyUploadResult reconciles local state after a non-failing upload call.
// A response with no usable id (empty data list, missing or non-string id)
// still marks the document UPLOADED: "uploaded without confirmed remote id"
// keeps the record from wedging on a lenient remote response.
func applyUploadResult(document *entity.Document, result *ragflow.UploadResult) {
	if id := result.FirstId(); id != "" {
		document.RemoteId = id
	}
	document.Status = entity.StatusUploaded
	now := time.Now()
	document.LastSyncTime = &now
}

func (s *documentRetryService) requestStatusRefresh(ctx context.Context, documentId uuid.UUID) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.RefreshDocumentStatusMessage{DocumentId: documentId})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil && s.logger != nil {
		s.logger.Warn("sync", "failed to request status refresh", map[string]interface{}{
			"document_id": documentId,
			"error":       err.Error(),
		})
	}
}

func (s *documentRetryService) publishEvent(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil && s.logger != nil {
		s.logger.Warn("sync", "failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}
