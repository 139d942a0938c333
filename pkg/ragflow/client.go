package ragflow

import (
	"context"
	"time"
)

// UploadedDocument is one accepted file in an upload response.
type UploadedDocument struct {
	Id   string
	Name string
}

// UploadResult mirrors the remote upload response's data list.
type UploadResult struct {
	Data []UploadedDocument
}

// FirstId returns the remote id of the first accepted document, or "" when
// the response carried none (empty data list, missing or non-string id).
func (r *UploadResult) FirstId() string {
	if r == nil || len(r.Data) == 0 {
		return ""
	}
	return r.Data[0].Id
}

// ParseStatus is the normalized remote view of a document's parse run.
// Progress is always a percentage in [0,100].
type ParseStatus struct {
	Progress         float64
	ProgressMsg      string
	ChunkNum         int
	RemoteCreateTime *time.Time
	RemoteUpdateTime *time.Time
}

// ChunkPayload is one normalized chunk from the remote listing.
type ChunkPayload struct {
	RemoteId   string
	Content    string
	Position   int
	Page       int
	StartChar  int
	EndChar    int
	Similarity float64
	Embedding  []float32
	Keywords   []string
}

// Client is the thin capability the sync core uses to talk to the remote
// RAG service. All calls are scoped under the dataset's remote container id.
type Client interface {
	Upload(ctx context.Context, datasetRemoteId, filePath, originalFilename string) (*UploadResult, error)
	ParseChunks(ctx context.Context, datasetRemoteId string, documentRemoteIds []string) (map[string]interface{}, error)
	StopParsing(ctx context.Context, datasetRemoteId string, documentRemoteIds []string) (map[string]interface{}, error)
	GetParseStatus(ctx context.Context, datasetRemoteId, documentRemoteId string) (*ParseStatus, error)
	ListChunks(ctx context.Context, datasetRemoteId, documentRemoteId string) ([]ChunkPayload, error)
	Delete(ctx context.Context, datasetRemoteId string, documentRemoteIds []string) error
}

// ParseUploadData maps the raw upload response data list into typed entries,
// tolerating absent or non-string ids by leaving them empty.
func ParseUploadData(data interface{}) *UploadResult {
	result := &UploadResult{Data: []UploadedDocument{}}
	arr, ok := data.([]interface{})
	if !ok {
		return result
	}
	for _, item := range arr {
		raw, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		doc := UploadedDocument{}
		if id, ok := StringField(raw, "id"); ok {
			doc.Id = id
		}
		if name, ok := StringField(raw, "name"); ok {
			doc.Name = name
		}
		result.Data = append(result.Data, doc)
	}
	return result
}

// ParseStatusFromPayload normalizes a raw document status payload.
func ParseStatusFromPayload(raw map[string]interface{}) *ParseStatus {
	status := &ParseStatus{}
	if p, ok := FloatField(raw, "progress"); ok {
		status.Progress = NormalizeProgress(p)
	}
	if msg, ok := StringField(raw, "progress_msg"); ok {
		status.ProgressMsg = msg
	}
	if n, ok := IntField(raw, "chunk_num"); ok {
		status.ChunkNum = n
	}
	status.RemoteCreateTime = TimeField(raw, "create_time")
	status.RemoteUpdateTime = TimeField(raw, "update_time")
	return status
}

// ChunkFromPayload normalizes a raw chunk listing element.
func ChunkFromPayload(raw map[string]interface{}) ChunkPayload {
	chunk := ChunkPayload{
		Embedding: []float32{},
		Keywords:  []string{},
	}
	if id, ok := StringField(raw, "id"); ok {
		chunk.RemoteId = id
	}
	if content, ok := StringField(raw, "content"); ok {
		chunk.Content = content
	}
	if pos, ok := IntField(raw, "position"); ok {
		chunk.Position = pos
	}
	if page, ok := IntField(raw, "page"); ok {
		chunk.Page = page
	}
	if start, ok := IntField(raw, "start_char"); ok {
		chunk.StartChar = start
	}
	if end, ok := IntField(raw, "end_char"); ok {
		chunk.EndChar = end
	}
	if sim, ok := FloatField(raw, "similarity"); ok {
		chunk.Similarity = sim
	}
	if emb, ok := FloatSliceField(raw, "embedding"); ok {
		chunk.Embedding = emb
	}
	if kw, ok := StringSliceField(raw, "important_keywords"); ok {
		chunk.Keywords = kw
	}
	return chunk
}
