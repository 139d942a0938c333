package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type Chunk struct {
	Id         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID       `gorm:"type:uuid;not null;index"`
	RemoteId   string          `gorm:"type:varchar(64);index"`
	Content    string          `gorm:"type:text"`
	Position   int             `gorm:"default:0"` // 0-based ordering within the document
	Similarity float64         `gorm:"type:numeric;default:0"`
	Embedding  pgvector.Vector `gorm:"type:vector(1024)"`
	Keywords   datatypes.JSON  `gorm:"type:jsonb"`
	Page       int             `gorm:"default:0"`
	StartChar  int             `gorm:"default:0"`
	EndChar    int             `gorm:"default:0"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
}

func (Chunk) TableName() string {
	return "chunks"
}
