package service

import (
	"context"
	"fmt"
	"time"

	"rag-docsync-be/internal/dto"
	"rag-docsync-be/internal/entity"
	"rag-docsync-be/internal/pkg/logger"
	"rag-docsync-be/internal/repository/specification"
	"rag-docsync-be/internal/repository/unitofwork"
	"rag-docsync-be/pkg/ragflow"

	"github.com/google/uuid"
)

type ISyncOrchestratorService interface {
	// RetryAllFailed re-uploads every document in the dataset that the
	// retry gate deems eligible, continuing past individual failures.
	RetryAllFailed(ctx context.Context, datasetId uuid.UUID) (*dto.RetryAllResult, error)

	// SyncAllChunks replaces the local chunk set of every uploaded document
	// in the dataset with the remote listing.
	SyncAllChunks(ctx context.Context, datasetId uuid.UUID) (*dto.ChunkSyncResult, error)
}

type syncOrchestratorService struct {
	uowFactory   unitofwork.RepositoryFactory
	remote       ragflow.Client
	retryService IDocumentRetryService
	logger       logger.ILogger
}

func NewSyncOrchestratorService(
	uowFactory unitofwork.RepositoryFactory,
	remote ragflow.Client,
	retryService IDocumentRetryService,
	sysLogger logger.ILogger,
) ISyncOrchestratorService {
	return &syncOrchestratorService{
		uowFactory:   uowFactory,
		remote:       remote,
		retryService: retryService,
		logger:       sysLogger,
	}
}

func (s *syncOrchestratorService) RetryAllFailed(ctx context.Context, datasetId uuid.UUID) (*dto.RetryAllResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	dataset, err := uow.DatasetRepository().FindOne(ctx, specification.ByID{ID: datasetId})
	if err != nil {
		return nil, err
	}
	if dataset == nil {
		return nil, fmt.Errorf("dataset %s not found", datasetId)
	}

	documents, err := uow.DocumentRepository().FindAll(ctx, specification.ByDatasetID{DatasetID: datasetId})
	if err != nil {
		return nil, err
	}

	result := &dto.RetryAllResult{Errors: []string{}}
	for _, document := range documents {
		if !s.retryService.ShouldRetry(document) {
			continue
		}
		if err := s.retryService.ProcessRetry(ctx, dataset, document); err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.RetriedCount++
	}

	if s.logger != nil {
		s.logger.Info("sync", "retry-all pass finished", map[string]interface{}{
			"dataset_id": datasetId,
			"retried":    result.RetriedCount,
			"failed":     len(result.Errors),
		})
	}
	return result, nil
}

func (s *syncOrchestratorService) SyncAllChunks(ctx context.Context, datasetId uuid.UUID) (*dto.ChunkSyncResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	dataset, err := uow.DatasetRepository().FindOne(ctx, specification.ByID{ID: datasetId})
	if err != nil {
		return nil, err
	}
	if dataset == nil {
		return nil, fmt.Errorf("dataset %s not found", datasetId)
	}
	if !dataset.HasRemote() {
		return nil, fmt.Errorf("dataset %q has no remote counterpart", dataset.Name)
	}

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByDatasetID{DatasetID: datasetId},
		specification.WithRemoteId{},
	)
	if err != nil {
		return nil, err
	}

	result := &dto.ChunkSyncResult{Errors: []string{}}
	for _, document := range documents {
		payloads, err := s.remote.ListChunks(ctx, dataset.RemoteId, document.RemoteId)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("document %q: chunk listing failed: %v", document.Name, err))
			continue
		}

		chunks := chunksFromPayloads(document.Id, payloads)
		if err := uow.ChunkRepository().ReplaceForDocument(ctx, document.Id, chunks); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("document %q: chunk replace failed: %v", document.Name, err))
			continue
		}

		count := len(chunks)
		document.ChunkCount = &count
		now := time.Now()
		document.LastSyncTime = &now
		if err := uow.DocumentRepository().Update(ctx, document); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("document %q: bookkeeping update failed: %v", document.Name, err))
			continue
		}

		result.SyncedCount++
	}

	if s.logger != nil {
		s.logger.Info("sync", "chunk sync pass finished", map[string]interface{}{
			"dataset_id": datasetId,
			"synced":     result.SyncedCount,
			"failed":     len(result.Errors),
		})
	}
	return result, nil
}

func chunksFromPayloads(documentId uuid.UUID, payloads []ragflow.ChunkPayload) []*entity.Chunk {
	chunks := make([]*entity.Chunk, len(payloads))
	for i, p := range payloads {
		position := p.Position
		if position == 0 {
			position = i
		}
		chunks[i] = &entity.Chunk{
			Id:         uuid.New(),
			DocumentId: documentId,
			RemoteId:   p.RemoteId,
			Content:    p.Content,
			Position:   position,
			Similarity: p.Similarity,
			Embedding:  p.Embedding,
			Keywords:   p.Keywords,
			Page:       p.Page,
			StartChar:  p.StartChar,
			EndChar:    p.EndChar,
			CreatedAt:  time.Now(),
		}
	}
	return chunks
}
