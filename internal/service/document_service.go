package service

import (
	"context"
	"fmt"
	"time"

	"rag-docsync-be/internal/dto"
	"rag-docsync-be/internal/entity"
	"rag-docsync-be/internal/repository/specification"
	"rag-docsync-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IDocumentService interface {
	GetAllByDataset(ctx context.Context, datasetId uuid.UUID) ([]*dto.DocumentResponse, error)
	Create(ctx context.Context, datasetId uuid.UUID, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error)
	Show(ctx context.Context, datasetId, documentId uuid.UUID) (*dto.DocumentResponse, error)
	GetChunks(ctx context.Context, datasetId, documentId uuid.UUID) ([]*dto.ChunkResponse, error)
}

type documentService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDocumentService(uowFactory unitofwork.RepositoryFactory) IDocumentService {
	return &documentService{
		uowFactory: uowFactory,
	}
}

func (c *documentService) GetAllByDataset(ctx context.Context, datasetId uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.DocumentRepository().FindAll(ctx, specification.ByDatasetID{DatasetID: datasetId})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.DocumentResponse, 0)
	for _, document := range documents {
		result = append(result, documentResponse(document))
	}

	return result, nil
}

func (c *documentService) Create(ctx context.Context, datasetId uuid.UUID, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	dataset, err := uow.DatasetRepository().FindOne(ctx, specification.ByID{ID: datasetId})
	if err != nil {
		return nil, err
	}
	if dataset == nil {
		return nil, fmt.Errorf("dataset %s not found", datasetId)
	}

	document := entity.Document{
		Id:        uuid.New(),
		DatasetId: datasetId,
		Name:      req.Name,
		FileName:  req.FileName,
		FilePath:  req.FilePath,
		MimeType:  req.MimeType,
		Size:      req.Size,
		Language:  req.Language,
		Status:    entity.StatusPending,
		CreatedAt: time.Now(),
	}

	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		return nil, err
	}

	return &dto.CreateDocumentResponse{
		Id: document.Id,
	}, nil
}

func (c *documentService) Show(ctx context.Context, datasetId, documentId uuid.UUID) (*dto.DocumentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: documentId},
		specification.ByDatasetID{DatasetID: datasetId},
	)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, nil
	}

	return documentResponse(document), nil
}

func (c *documentService) GetChunks(ctx context.Context, datasetId, documentId uuid.UUID) ([]*dto.ChunkResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: documentId},
		specification.ByDatasetID{DatasetID: datasetId},
	)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, fmt.Errorf("document %s not found in dataset %s", documentId, datasetId)
	}

	chunks, err := uow.ChunkRepository().FindAll(ctx, specification.ByDocumentID{DocumentID: document.Id})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChunkResponse, 0)
	for _, chunk := range chunks {
		result = append(result, &dto.ChunkResponse{
			Id:         chunk.Id,
			RemoteId:   chunk.RemoteId,
			Content:    chunk.Content,
			Position:   chunk.Position,
			Similarity: chunk.Similarity,
			Keywords:   chunk.Keywords,
			Page:       chunk.Page,
			StartChar:  chunk.StartChar,
			EndChar:    chunk.EndChar,
		})
	}

	return result, nil
}

func documentResponse(document *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:           document.Id,
		DatasetId:    document.DatasetId,
		Name:         document.Name,
		FileName:     document.FileName,
		MimeType:     document.MimeType,
		Size:         document.Size,
		Language:     document.Language,
		Summary:      document.Summary,
		RemoteId:     document.RemoteId,
		Status:       string(document.Status),
		Progress:     document.Progress,
		ProgressMsg:  document.ProgressMsg,
		ChunkCount:   document.ChunkCount,
		LastSyncTime: document.LastSyncTime,
		CreatedAt:    document.CreatedAt,
	}
}
