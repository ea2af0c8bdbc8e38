package rag

import (
	"context"

	"github.com/odontosys/ai-backend/internal/entity"
)

// Embedder maps text to a fixed-length vector. Implementations must report
// failures as errors, never as zero vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// KnowledgeStore is the persistence contract the engine consumes.
type KnowledgeStore interface {
	// SearchNearest returns active entries in the given categories ordered
	// by ascending vector distance to the query embedding, at most limit.
	SearchNearest(ctx context.Context, embedding []float32, categories []string, limit int) ([]entity.KnowledgeHit, error)

	// Insert persists a new entry together with its embedding.
	Insert(ctx context.Context, entry entity.KnowledgeEntry, embedding []float32) error

	// UpdateContent atomically replaces content, embedding and the updated
	// timestamp of the identified entry. Returns entity.ErrKnowledgeNotFound
	// if no entry has that id.
	UpdateContent(ctx context.Context, id, content string, embedding []float32) error

	// Deactivate removes the identified entry from retrieval without
	// deleting it. Returns entity.ErrKnowledgeNotFound if no entry has
	// that id.
	Deactivate(ctx context.Context, id string) error
}
