package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_UPLOADED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeDocumentUploaded         = "DOCUMENT_UPLOADED"
	TypeDocumentSyncFailed       = "DOCUMENT_SYNC_FAILED"
	TypeDocumentReparseRequested = "DOCUMENT_REPARSE_REQUESTED"
	TypeDocumentParsingStopped   = "DOCUMENT_PARSING_STOPPED"
	TypeDocumentDeleted          = "DOCUMENT_DELETED"
)

func DocumentUploaded(documentId uuid.UUID, name, remoteId string) Event {
	return BaseEvent{
		Type: TypeDocumentUploaded,
		Data: map[string]interface{}{
			"document_id": documentId,
			"name":        name,
			"remote_id":   remoteId,
		},
		OccurredAt: time.Now(),
	}
}

func DocumentSyncFailed(documentId uuid.UUID, name, reason string) Event {
	return BaseEvent{
		Type: TypeDocumentSyncFailed,
		Data: map[string]interface{}{
			"document_id": documentId,
			"name":        name,
			"reason":      reason,
		},
		OccurredAt: time.Now(),
	}
}

func DocumentReparseRequested(documentId uuid.UUID, name string) Event {
	return BaseEvent{
		Type: TypeDocumentReparseRequested,
		Data: map[string]interface{}{
			"document_id": documentId,
			"name":        name,
		},
		OccurredAt: time.Now(),
	}
}

func DocumentParsingStopped(documentId uuid.UUID, name string) Event {
	return BaseEvent{
		Type: TypeDocumentParsingStopped,
		Data: map[string]interface{}{
			"document_id": documentId,
			"name":        name,
		},
		OccurredAt: time.Now(),
	}
}

func DocumentDeleted(documentId uuid.UUID, name string) Event {
	return BaseEvent{
		Type: TypeDocumentDeleted,
		Data: map[string]interface{}{
			"document_id": documentId,
			"name":        name,
		},
		OccurredAt: time.Now(),
	}
}
