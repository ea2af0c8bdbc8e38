package knowledge

import (
	"context"

	"github.com/odontosys/ai-backend/internal/entity"
)

// KnowledgeEngine is the retrieval/ingestion contract the HTTP layer
// consumes. Mutations go through the engine so its cache invalidation
// applies to every write path.
type KnowledgeEngine interface {
	Search(ctx context.Context, reqType entity.RequestType, reqContext map[string]any, limit int) ([]entity.KnowledgeResult, error)
	AddKnowledge(ctx context.Context, input entity.AddKnowledgeInput) (*entity.KnowledgeEntry, error)
	UpdateKnowledge(ctx context.Context, id, content string) error
	DeactivateKnowledge(ctx context.Context, id string) error
}
