package mapper

import (
	"reflect"
	"testing"

	"rag-docsync-be/internal/entity"
	"rag-docsync-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func TestChunkMapperRoundTrip(t *testing.T) {
	m := NewChunkMapper()

	src := &entity.Chunk{
		Id:         uuid.New(),
		DocumentId: uuid.New(),
		RemoteId:   "chunk-9",
		Content:    "some text",
		Position:   4,
		Similarity: 0.91,
		Embedding:  []float32{0.1, 0.2, 0.3},
		Keywords:   []string{"alpha", "beta"},
		Page:       2,
		StartChar:  100,
		EndChar:    110,
	}

	got := m.ToEntity(m.ToModel(src))

	if got.RemoteId != src.RemoteId || got.Content != src.Content || got.Position != src.Position {
		t.Fatalf("fields changed: %+v", got)
	}
	if !reflect.DeepEqual(got.Embedding, src.Embedding) {
		t.Errorf("Embedding = %v", got.Embedding)
	}
	if !reflect.DeepEqual(got.Keywords, src.Keywords) {
		t.Errorf("Keywords = %v", got.Keywords)
	}
}

func TestChunkMapperCorruptKeywords(t *testing.T) {
	m := NewChunkMapper()

	chunk := m.ToEntity(&model.Chunk{
		Id:       uuid.New(),
		Keywords: datatypes.JSON([]byte(`{not json`)),
	})

	if chunk.Keywords == nil || len(chunk.Keywords) != 0 {
		t.Errorf("corrupt keywords should degrade to empty list, got %v", chunk.Keywords)
	}
}

func TestChunkMapperNilKeywords(t *testing.T) {
	m := NewChunkMapper()

	stored := m.ToModel(&entity.Chunk{Id: uuid.New()})
	if string(stored.Keywords) != "[]" {
		t.Errorf("nil keywords should marshal to [], got %s", stored.Keywords)
	}
}
