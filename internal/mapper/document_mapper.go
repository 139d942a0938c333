package mapper

import (
	"time"

	"rag-docsync-be/internal/entity"
	"rag-docsync-be/internal/model"

	"gorm.io/gorm"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	status := entity.DocumentStatus(d.Status)
	if !status.Valid() {
		status = entity.StatusPending
	}

	return &entity.Document{
		Id:               d.Id,
		DatasetId:        d.DatasetId,
		Name:             d.Name,
		FileName:         d.FileName,
		FilePath:         d.FilePath,
		MimeType:         d.MimeType,
		Size:             d.Size,
		Language:         d.Language,
		Summary:          d.Summary,
		RemoteId:         d.RemoteId,
		Status:           status,
		Progress:         d.Progress,
		ProgressMsg:      d.ProgressMsg,
		ChunkCount:       d.ChunkCount,
		RemoteCreateTime: d.RemoteCreateTime,
		RemoteUpdateTime: d.RemoteUpdateTime,
		LastSyncTime:     d.LastSyncTime,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
		IsDeleted:        d.DeletedAt.Valid,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if d.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	} else if d.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.Document{
		Id:               d.Id,
		DatasetId:        d.DatasetId,
		Name:             d.Name,
		FileName:         d.FileName,
		FilePath:         d.FilePath,
		MimeType:         d.MimeType,
		Size:             d.Size,
		Language:         d.Language,
		Summary:          d.Summary,
		RemoteId:         d.RemoteId,
		Status:           string(d.Status),
		Progress:         d.Progress,
		ProgressMsg:      d.ProgressMsg,
		ChunkCount:       d.ChunkCount,
		RemoteCreateTime: d.RemoteCreateTime,
		RemoteUpdateTime: d.RemoteUpdateTime,
		LastSyncTime:     d.LastSyncTime,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
	}
}

func (m *DocumentMapper) ToEntities(documents []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(documents))
	for i, d := range documents {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
