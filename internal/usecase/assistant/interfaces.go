package assistant

import (
	"context"

	"github.com/odontosys/ai-backend/internal/entity"
)

// Retriever supplies supporting knowledge for a request.
type Retriever interface {
	Search(ctx context.Context, reqType entity.RequestType, reqContext map[string]any, limit int) ([]entity.KnowledgeResult, error)
}

// CompletionProvider answers completion requests. Implementations are
// interchangeable; callers never depend on which vendor answers.
type CompletionProvider interface {
	Name() string
	Complete(ctx context.Context, req *entity.CompletionRequest) (*entity.CompletionResult, error)
}

// RateLimiter throttles per-tenant request volume.
type RateLimiter interface {
	Allow(tenant string) error
}

// CostTracker gates and records completion spend.
type CostTracker interface {
	Authorize() error
	Record(model string, inputTokens, outputTokens int) float64
}
