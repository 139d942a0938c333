package service

import (
	"context"
	"fmt"
	"time"

	"rag-docsync-be/internal/dto"
	"rag-docsync-be/internal/entity"
	"rag-docsync-be/internal/pkg/logger"
	"rag-docsync-be/internal/repository/memory"
	"rag-docsync-be/internal/repository/specification"
	"rag-docsync-be/internal/repository/unitofwork"
	"rag-docsync-be/pkg/events"
	pktNats "rag-docsync-be/pkg/nats"
	"rag-docsync-be/pkg/ragflow"
	"rag-docsync-be/pkg/store"

	"github.com/google/uuid"
)

type IDocumentStatusService interface {
	Reparse(ctx context.Context, datasetId, documentId uuid.UUID) (*dto.SyncResult, error)
	StopParsing(ctx context.Context, datasetId, documentId uuid.UUID) (*dto.SyncResult, error)
	// RefreshFromRemote is the opportunistic poll path. It never returns an
	// error: a failed poll must not destabilize the document's recorded
	// state, so failures are logged and discarded.
	RefreshFromRemote(ctx context.Context, documentId uuid.UUID)
}

type documentStatusService struct {
	uowFactory     unitofwork.RepositoryFactory
	remote         ragflow.Client
	statusCache    *memory.StatusCache
	locks          *store.LockStore
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewDocumentStatusService(
	uowFactory unitofwork.RepositoryFactory,
	remote ragflow.Client,
	statusCache *memory.StatusCache,
	locks *store.LockStore,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IDocumentStatusService {
	return &documentStatusService{
		uowFactory:     uowFactory,
		remote:         remote,
		statusCache:    statusCache,
		locks:          locks,
		eventPublisher: eventPublisher,
		logger:         sysLogger,
	}
}

// loadPair fetches the document/dataset pair and checks the remote-call
// preconditions shared by reparse and stop. A nil SyncResult means both
// entities loaded and carry remote ids.
func (s *documentStatusService) loadPair(ctx context.Context, uow unitofwork.UnitOfWork, datasetId, documentId uuid.UUID) (*entity.Document, *entity.Dataset, *dto.SyncResult, error) {
	dataset, err := uow.DatasetRepository().FindOne(ctx, specification.ByID{ID: datasetId})
	if err != nil {
		return nil, nil, nil, err
	}
	if dataset == nil {
		return nil, nil, dto.SyncFailure(fmt.Sprintf("dataset %s not found", datasetId)), nil
	}

	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: documentId},
		specification.ByDatasetID{DatasetID: datasetId},
	)
	if err != nil {
		return nil, nil, nil, err
	}
	if document == nil {
		return nil, nil, dto.SyncFailure(fmt.Sprintf("document %s not found in dataset %s", documentId, datasetId)), nil
	}

	if !document.IsUploaded() {
		return nil, nil, dto.SyncFailure(fmt.Sprintf("document %q is not uploaded to the remote service yet", document.Name)), nil
	}
	if !dataset.HasRemote() {
		return nil, nil, dto.SyncFailure(fmt.Sprintf("dataset %q has no remote counterpart", dataset.Name)), nil
	}

	return document, dataset, nil, nil
}

func (s *documentStatusService) Reparse(ctx context.Context, datasetId, documentId uuid.UUID) (*dto.SyncResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, dataset, fail, err := s.loadPair(ctx, uow, datasetId, documentId)
	if err != nil {
		return nil, err
	}
	if fail != nil {
		return fail, nil
	}

	if s.locks != nil {
		if !s.locks.Acquire(ctx, document.Id) {
			return dto.SyncFailure(fmt.Sprintf("document %q has another sync operation in flight", document.Name)), nil
		}
		defer s.locks.Release(ctx, document.Id)
	}

	payload, err := s.remote.ParseChunks(ctx, dataset.RemoteId, []string{document.RemoteId})
	if err != nil {
		// Remote failure leaves the recorded status untouched.
		return dto.SyncFailure(fmt.Sprintf("failed to start parsing for document %q: %v", document.Name, err)), nil
	}

	document.Status = entity.StatusProcessing
	zero := 0.0
	document.Progress = &zero
	msg := "reparsing"
	document.ProgressMsg = &msg

	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return nil, err
	}

	if s.statusCache != nil {
		s.statusCache.Invalidate(document.RemoteId)
	}
	s.publishEvent(ctx, events.DocumentReparseRequested(document.Id, document.Name))

	return dto.SyncSuccess("reparse started", payload), nil
}

func (s *documentStatusService) StopParsing(ctx context.Context, datasetId, documentId uuid.UUID) (*dto.SyncResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, dataset, fail, err := s.loadPair(ctx, uow, datasetId, documentId)
	if err != nil {
		return nil, err
	}
	if fail != nil {
		return fail, nil
	}

	if s.locks != nil {
		if !s.locks.Acquire(ctx, document.Id) {
			return dto.SyncFailure(fmt.Sprintf("document %q has another sync operation in flight", document.Name)), nil
		}
		defer s.locks.Release(ctx, document.Id)
	}

	payload, err := s.remote.StopParsing(ctx, dataset.RemoteId, []string{document.RemoteId})
	if err != nil {
		return dto.SyncFailure(fmt.Sprintf("failed to stop parsing for document %q: %v", document.Name, err)), nil
	}

	document.Status = entity.StatusPending
	document.Progress = nil
	msg := "parsing stopped"
	document.ProgressMsg = &msg

	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return nil, err
	}

	if s.statusCache != nil {
		s.statusCache.Invalidate(document.RemoteId)
	}
	s.publishEvent(ctx, events.DocumentParsingStopped(document.Id, document.Name))

	return dto.SyncSuccess("parsing stopped", payload), nil
}

func (s *documentStatusService) RefreshFromRemote(ctx context.Context, documentId uuid.UUID) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		s.logWarn("status poll lookup failed", documentId, err)
		return
	}
	// Polling is opportunistic: a missing document or one the remote does
	// not know about is a silent no-op, not an error.
	if document == nil || !document.IsUploaded() {
		return
	}

	dataset, err := uow.DatasetRepository().FindOne(ctx, specification.ByID{ID: document.DatasetId})
	if err != nil {
		s.logWarn("status poll dataset lookup failed", documentId, err)
		return
	}
	if dataset == nil || !dataset.HasRemote() {
		return
	}

	status, cached := s.cachedStatus(document.RemoteId)
	if !cached {
		status, err = s.remote.GetParseStatus(ctx, dataset.RemoteId, document.RemoteId)
		if err != nil {
			s.logWarn("status poll remote call failed", documentId, err)
			return
		}
		if s.statusCache != nil {
			s.statusCache.Save(document.RemoteId, status)
		}
	}

	// Polling updates progress bookkeeping in place; the lifecycle status
	// itself is never changed by a poll.
	progress := status.Progress
	document.Progress = &progress
	progressMsg := status.ProgressMsg
	document.ProgressMsg = &progressMsg
	chunkCount := status.ChunkNum
	document.ChunkCount = &chunkCount
	if status.RemoteCreateTime != nil {
		document.RemoteCreateTime = status.RemoteCreateTime
	}
	if status.RemoteUpdateTime != nil {
		document.RemoteUpdateTime = status.RemoteUpdateTime
	}
	now := time.Now()
	document.LastSyncTime = &now

	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		s.logWarn("status poll persist failed", documentId, err)
	}
}

func (s *documentStatusService) cachedStatus(remoteId string) (*ragflow.ParseStatus, bool) {
	if s.statusCache == nil {
		return nil, false
	}
	return s.statusCache.Get(remoteId)
}

func (s *documentStatusService) publishEvent(ctx context.Context, event events.Event) {
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

func (s *documentStatusService) logWarn(message string, documentId uuid.UUID, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Warn("sync", message, map[string]interface{}{
		"document_id": documentId,
		"error":       err.Error(),
	})
}
