package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DatasetId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	FileName  string    `gorm:"type:varchar(255)"`
	FilePath  string    `gorm:"type:varchar(512)"`
	MimeType  string    `gorm:"type:varchar(128)"`
	Size      int64     `gorm:"default:0"`
	Language  string    `gorm:"type:varchar(32)"`
	Summary   string    `gorm:"type:text"`

	RemoteId    string   `gorm:"type:varchar(64);index"`
	Status      string   `gorm:"type:varchar(32);not null;default:'PENDING';index"`
	Progress    *float64 `gorm:"type:numeric"`
	ProgressMsg *string  `gorm:"type:varchar(255)"`
	ChunkCount  *int

	RemoteCreateTime *time.Time
	RemoteUpdateTime *time.Time
	LastSyncTime     *time.Time

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
