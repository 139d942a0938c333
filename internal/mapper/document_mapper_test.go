package mapper

import (
	"testing"
	"time"

	"rag-docsync-be/internal/entity"
	"rag-docsync-be/internal/model"

	"github.com/google/uuid"
)

func TestDocumentMapperInvalidStatusFallsBackToPending(t *testing.T) {
	m := NewDocumentMapper()

	tests := []struct {
		name   string
		stored string
		want   entity.DocumentStatus
	}{
		{"known status preserved", "COMPLETED", entity.StatusCompleted},
		{"unknown status resets", "SOMETHING_ELSE", entity.StatusPending},
		{"empty status resets", "", entity.StatusPending},
		{"wrong case resets", "completed", entity.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := m.ToEntity(&model.Document{
				Id:     uuid.New(),
				Status: tt.stored,
			})
			if doc.Status != tt.want {
				t.Errorf("Status = %s, want %s", doc.Status, tt.want)
			}
		})
	}
}

func TestDocumentMapperRoundTrip(t *testing.T) {
	m := NewDocumentMapper()

	progress := 42.5
	msg := "parsing"
	count := 7
	now := time.Now().Truncate(time.Second)

	src := &entity.Document{
		Id:           uuid.New(),
		DatasetId:    uuid.New(),
		Name:         "handbook",
		FileName:     "handbook.pdf",
		FilePath:     "/data/handbook.pdf",
		MimeType:     "application/pdf",
		Size:         2048,
		RemoteId:     "remote-1",
		Status:       entity.StatusProcessing,
		Progress:     &progress,
		ProgressMsg:  &msg,
		ChunkCount:   &count,
		LastSyncTime: &now,
		CreatedAt:    now,
	}

	got := m.ToEntity(m.ToModel(src))

	if got.Id != src.Id || got.DatasetId != src.DatasetId {
		t.Fatalf("identity fields changed: %+v", got)
	}
	if got.Status != entity.StatusProcessing {
		t.Errorf("Status = %s", got.Status)
	}
	if got.Progress == nil || *got.Progress != progress {
		t.Errorf("Progress = %v", got.Progress)
	}
	if got.ChunkCount == nil || *got.ChunkCount != count {
		t.Errorf("ChunkCount = %v", got.ChunkCount)
	}
	if got.IsDeleted {
		t.Error("IsDeleted should be false")
	}
}

func TestDocumentMapperNil(t *testing.T) {
	m := NewDocumentMapper()
	if m.ToEntity(nil) != nil {
		t.Error("ToEntity(nil) should be nil")
	}
	if m.ToModel(nil) != nil {
		t.Error("ToModel(nil) should be nil")
	}
}
