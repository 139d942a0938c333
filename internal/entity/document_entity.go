package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	DatasetId uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	FileName  string
	// FilePath points at the locally stored raw bytes. Empty when the
	// document was ingested from a remote listing and never stored here.
	FilePath string
	MimeType string
	Size     int64
	Language string
	Summary  string

	// RemoteId is set once the remote RAG service has accepted the upload.
	// A document with a non-empty RemoteId must never be re-uploaded.
	RemoteId    string
	Status      DocumentStatus
	Progress    *float64
	ProgressMsg *string
	ChunkCount  *int

	RemoteCreateTime *time.Time
	RemoteUpdateTime *time.Time
	LastSyncTime     *time.Time

	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// IsUploaded reports whether the remote service already holds this document.
func (d *Document) IsUploaded() bool {
	return d.RemoteId != ""
}

// NeedsUpload is the retry gate: true only when an upload is actually
// required and a stored file exists to upload.
func (d *Document) NeedsUpload() bool {
	return d.RemoteId == "" && d.FilePath != ""
}
