package service

import (
	"context"
	"time"

	"rag-docsync-be/internal/dto"
	"rag-docsync-be/internal/entity"
	"rag-docsync-be/internal/repository/specification"
	"rag-docsync-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IDatasetService interface {
	GetAll(ctx context.Context) ([]*dto.GetAllDatasetResponse, error)
	Create(ctx context.Context, req *dto.CreateDatasetRequest) (*dto.CreateDatasetResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowDatasetResponse, error)
}

type datasetService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDatasetService(uowFactory unitofwork.RepositoryFactory) IDatasetService {
	return &datasetService{
		uowFactory: uowFactory,
	}
}

func (c *datasetService) GetAll(ctx context.Context) ([]*dto.GetAllDatasetResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	datasets, err := uow.DatasetRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GetAllDatasetResponse, 0)
	for _, dataset := range datasets {
		result = append(result, &dto.GetAllDatasetResponse{
			Id:        dataset.Id,
			Name:      dataset.Name,
			RemoteId:  dataset.RemoteId,
			CreatedAt: dataset.CreatedAt,
		})
	}

	return result, nil
}

func (c *datasetService) Create(ctx context.Context, req *dto.CreateDatasetRequest) (*dto.CreateDatasetResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	dataset := entity.Dataset{
		Id:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		RemoteId:    req.RemoteId,
		CreatedAt:   time.Now(),
	}

	if err := uow.DatasetRepository().Create(ctx, &dataset); err != nil {
		return nil, err
	}

	return &dto.CreateDatasetResponse{
		Id: dataset.Id,
	}, nil
}

func (c *datasetService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowDatasetResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	dataset, err := uow.DatasetRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if dataset == nil {
		return nil, nil
	}

	documentCount, err := uow.DocumentRepository().Count(ctx, specification.ByDatasetID{DatasetID: dataset.Id})
	if err != nil {
		return nil, err
	}

	return &dto.ShowDatasetResponse{
		Id:            dataset.Id,
		Name:          dataset.Name,
		Description:   dataset.Description,
		RemoteId:      dataset.RemoteId,
		DocumentCount: documentCount,
		CreatedAt:     dataset.CreatedAt,
		UpdatedAt:     dataset.UpdatedAt,
	}, nil
}
