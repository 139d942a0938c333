package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chunk is a remote-derived fragment of a parsed document. Chunks are never
// authored locally; every sync replaces the document's full chunk set.
type Chunk struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentId uuid.UUID `gorm:"type:uuid;index"`
	RemoteId   string
	Content    string
	Position   int
	Similarity float64
	Embedding  []float32
	Keywords   []string
	Page       int
	StartChar  int
	EndChar    int
	CreatedAt  time.Time
}
