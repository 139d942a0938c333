package dto

import "github.com/google/uuid"

// SyncResult is the structured outcome of a single-document remote
// operation. Expected failures (preconditions, remote errors) come back as
// Success=false with a human-readable message instead of an error value, so
// batch callers can continue past them.
type SyncResult struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

func SyncFailure(message string) *SyncResult {
	return &SyncResult{Success: false, Message: message}
}

func SyncSuccess(message string, data map[string]interface{}) *SyncResult {
	return &SyncResult{Success: true, Message: message, Data: data}
}

// BatchDeleteResult reports per-item outcomes of a batch deletion. The batch
// itself always completes; only individual items fail.
type BatchDeleteResult struct {
	DeletedCount int      `json:"deleted_count"`
	Errors       []string `json:"errors"`
}

// RetryAllResult aggregates a dataset-wide retry pass.
type RetryAllResult struct {
	RetriedCount int      `json:"retried_count"`
	Errors       []string `json:"errors"`
}

// ChunkSyncResult aggregates a dataset-wide chunk sync pass.
type ChunkSyncResult struct {
	SyncedCount int      `json:"synced_count"`
	Errors      []string `json:"errors"`
}

// RefreshDocumentStatusMessage rides the internal pubsub topic that drives
// the opportunistic status poll loop.
type RefreshDocumentStatusMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
