package mapper

import (
	"encoding/json"

	"rag-docsync-be/internal/entity"
	"rag-docsync-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ChunkMapper struct{}

func NewChunkMapper() *ChunkMapper {
	return &ChunkMapper{}
}

func (m *ChunkMapper) ToEntity(c *model.Chunk) *entity.Chunk {
	if c == nil {
		return nil
	}

	// Keywords are stored as a JSON string array; a corrupt column value
	// degrades to an empty list instead of failing the read.
	keywords := []string{}
	if len(c.Keywords) > 0 {
		_ = json.Unmarshal(c.Keywords, &keywords)
	}

	return &entity.Chunk{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		RemoteId:   c.RemoteId,
		Content:    c.Content,
		Position:   c.Position,
		Similarity: c.Similarity,
		Embedding:  c.Embedding.Slice(),
		Keywords:   keywords,
		Page:       c.Page,
		StartChar:  c.StartChar,
		EndChar:    c.EndChar,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *ChunkMapper) ToModel(c *entity.Chunk) *model.Chunk {
	if c == nil {
		return nil
	}

	keywords := c.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	raw, err := json.Marshal(keywords)
	if err != nil {
		raw = []byte("[]")
	}

	return &model.Chunk{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		RemoteId:   c.RemoteId,
		Content:    c.Content,
		Position:   c.Position,
		Similarity: c.Similarity,
		Embedding:  pgvector.NewVector(c.Embedding),
		Keywords:   datatypes.JSON(raw),
		Page:       c.Page,
		StartChar:  c.StartChar,
		EndChar:    c.EndChar,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *ChunkMapper) ToEntities(chunks []*model.Chunk) []*entity.Chunk {
	entities := make([]*entity.Chunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *ChunkMapper) ToModels(chunks []*entity.Chunk) []*model.Chunk {
	models := make([]*model.Chunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}
