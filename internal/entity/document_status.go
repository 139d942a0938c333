package entity

// DocumentStatus is the closed set of lifecycle states a document moves
// through while being mirrored to the remote RAG service.
type DocumentStatus string

const (
	StatusPending    DocumentStatus = "PENDING"
	StatusUploading  DocumentStatus = "UPLOADING"
	StatusUploaded   DocumentStatus = "UPLOADED"
	StatusProcessing DocumentStatus = "PROCESSING"
	StatusCompleted  DocumentStatus = "COMPLETED"
	StatusSyncFailed DocumentStatus = "SYNC_FAILED"
)

// transitions encodes the legal edges of the lifecycle:
// PENDING -> UPLOADING -> UPLOADED -> PROCESSING -> COMPLETED,
// SYNC_FAILED reachable on upload/processing errors and always
// retry-eligible, PENDING reachable from PROCESSING via an explicit stop.
var transitions = map[DocumentStatus][]DocumentStatus{
	StatusPending:    {StatusUploading, StatusUploaded},
	StatusUploading:  {StatusUploaded, StatusSyncFailed},
	StatusUploaded:   {StatusProcessing, StatusSyncFailed},
	StatusProcessing: {StatusCompleted, StatusPending, StatusSyncFailed},
	StatusCompleted:  {StatusProcessing},
	StatusSyncFailed: {StatusUploading, StatusUploaded, StatusProcessing},
}

func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusUploading, StatusUploaded,
		StatusProcessing, StatusCompleted, StatusSyncFailed:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next is a legal edge.
func (s DocumentStatus) CanTransition(next DocumentStatus) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the state ends the success path. Only COMPLETED
// is terminal; SYNC_FAILED always remains retry-eligible.
func (s DocumentStatus) Terminal() bool {
	return s == StatusCompleted
}
