package entity

import (
	"time"

	"github.com/google/uuid"
)

type Dataset struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Description string
	// RemoteId is the container id assigned by the remote RAG service.
	// Every per-document remote call is scoped under it.
	RemoteId  string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// HasRemote reports whether the dataset is linked to a remote container.
// Remote document operations require this to be true.
func (d *Dataset) HasRemote() bool {
	return d.RemoteId != ""
}
