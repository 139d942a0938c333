package service

import (
	"context"
	"fmt"

	"rag-docsync-be/internal/dto"
	"rag-docsync-be/internal/pkg/logger"
	"rag-docsync-be/internal/repository/specification"
	"rag-docsync-be/internal/repository/unitofwork"
	"rag-docsync-be/pkg/events"
	pktNats "rag-docsync-be/pkg/nats"
	"rag-docsync-be/pkg/ragflow"

	"github.com/google/uuid"
)

type IDocumentBatchService interface {
	// BatchDelete removes each requested document independently. One bad id
	// never aborts the batch; the result reflects per-item outcomes exactly.
	BatchDelete(ctx context.Context, datasetId uuid.UUID, documentIds []uuid.UUID) (*dto.BatchDeleteResult, error)
}

type documentBatchService struct {
	uowFactory     unitofwork.RepositoryFactory
	remote         ragflow.Client
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewDocumentBatchService(
	uowFactory unitofwork.RepositoryFactory,
	remote ragflow.Client,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IDocumentBatchService {
	return &documentBatchService{
		uowFactory:     uowFactory,
		remote:         remote,
		eventPublisher: eventPublisher,
		logger:         sysLogger,
	}
}

func (s *documentBatchService) BatchDelete(ctx context.Context, datasetId uuid.UUID, documentIds []uuid.UUID) (*dto.BatchDeleteResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The dataset is only needed for the best-effort remote delete; its
	// absence does not block local removal.
	dataset, err := uow.DatasetRepository().FindOne(ctx, specification.ByID{ID: datasetId})
	if err != nil {
		s.logWarn("dataset lookup failed during batch delete", datasetId, err)
		dataset = nil
	}

	result := &dto.BatchDeleteResult{Errors: []string{}}

	for _, id := range documentIds {
		document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Document %s lookup failed: %v", id, err))
			continue
		}
		if document == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Document %s not found", id))
			continue
		}
		if document.DatasetId != datasetId {
			result.Errors = append(result.Errors, fmt.Sprintf("Document %s not belongs to this dataset", id))
			continue
		}

		// Best-effort remote delete; the local store is authoritative, so a
		// remote failure is logged and removal proceeds.
		if document.IsUploaded() && dataset != nil && dataset.HasRemote() {
			if rerr := s.remote.Delete(ctx, dataset.RemoteId, []string{document.RemoteId}); rerr != nil {
				s.logWarn("remote delete failed", document.Id, rerr)
			}
		}

		if err := uow.ChunkRepository().DeleteAllByDocumentId(ctx, document.Id); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Document %s chunk cleanup failed: %v", id, err))
			continue
		}
		if err := uow.DocumentRepository().Delete(ctx, document.Id); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Document %s delete failed: %v", id, err))
			continue
		}

		s.publishEvent(ctx, events.DocumentDeleted(document.Id, document.Name))
		result.DeletedCount++
	}

	return result, nil
}

func (s *documentBatchService) publishEvent(ctx context.Context, event events.Event) {
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

func (s *documentBatchService) logWarn(message string, id uuid.UUID, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Warn("sync", message, map[string]interface{}{
		"id":    id,
		"error": err.Error(),
	})
}
