package dto

import (
	"time"

	"github.com/google/uuid"
)

type DocumentResponse struct {
	Id           uuid.UUID  `json:"id"`
	DatasetId    uuid.UUID  `json:"dataset_id"`
	Name         string     `json:"name"`
	FileName     string     `json:"file_name"`
	MimeType     string     `json:"mime_type"`
	Size         int64      `json:"size"`
	Language     string     `json:"language"`
	Summary      string     `json:"summary"`
	RemoteId     string     `json:"remote_id"`
	Status       string     `json:"status"`
	Progress     *float64   `json:"progress"`
	ProgressMsg  *string    `json:"progress_msg"`
	ChunkCount   *int       `json:"chunk_count"`
	LastSyncTime *time.Time `json:"last_sync_time"`
	CreatedAt    time.Time  `json:"created_at"`
}

type CreateDocumentRequest struct {
	Name     string `json:"name" validate:"required"`
	FileName string `json:"file_name" validate:"required"`
	FilePath string `json:"file_path"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	Language string `json:"language"`
}

type CreateDocumentResponse struct {
	Id uuid.UUID `json:"id"`
}

type BatchDeleteRequest struct {
	DocumentIds []uuid.UUID `json:"document_ids" validate:"required,min=1"`
}

type ChunkResponse struct {
	Id         uuid.UUID `json:"id"`
	RemoteId   string    `json:"remote_id"`
	Content    string    `json:"content"`
	Position   int       `json:"position"`
	Similarity float64   `json:"similarity"`
	Keywords   []string  `json:"keywords"`
	Page       int       `json:"page"`
	StartChar  int       `json:"start_char"`
	EndChar    int       `json:"end_char"`
}
