package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDatasetRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	RemoteId    string `json:"remote_id"`
}

type CreateDatasetResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowDatasetResponse struct {
	Id            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	RemoteId      string     `json:"remote_id"`
	DocumentCount int64      `json:"document_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

type GetAllDatasetResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	RemoteId  string    `json:"remote_id"`
	CreatedAt time.Time `json:"created_at"`
}
