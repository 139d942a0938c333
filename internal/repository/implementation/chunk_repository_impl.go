package implementation

import (
	"context"

	"rag-docsync-be/internal/entity"
	"rag-docsync-be/internal/mapper"
	"rag-docsync-be/internal/model"
	"rag-docsync-be/internal/repository/contract"
	"rag-docsync-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkMapper
}

func NewChunkRepository(db *gorm.DB) contract.ChunkRepository {
	return &ChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkMapper(),
	}
}

func (r *ChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChunkRepositoryImpl) ReplaceForDocument(ctx context.Context, documentId uuid.UUID, chunks []*entity.Chunk) error {
	models := r.mapper.ToModels(chunks)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", documentId).Delete(&model.Chunk{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.Create(models).Error
	})
}

func (r *ChunkRepositoryImpl) DeleteAllByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.Chunk{}).Error
}

func (r *ChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error) {
	var models []*model.Chunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Order("position ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Chunk{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
