package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByDatasetID struct {
	DatasetID uuid.UUID
}

func (s ByDatasetID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("dataset_id = ?", s.DatasetID)
}

type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// WithRemoteId matches documents the remote service already holds.
type WithRemoteId struct{}

func (s WithRemoteId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("remote_id <> ''")
}

// WithoutRemoteId matches documents never accepted by the remote service.
type WithoutRemoteId struct{}

func (s WithoutRemoteId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("remote_id = ''")
}
