package assistant

import (
	"context"

	"github.com/odontosys/ai-backend/internal/entity"
)

// AssistantUsecase is the orchestration contract the HTTP layer consumes.
// Operations report failures inside the response envelope, not as errors.
type AssistantUsecase interface {
	GenerateClinicalEvolution(ctx context.Context, req *entity.AIRequest) *entity.AIResponse
	SuggestDiagnosis(ctx context.Context, req *entity.AIRequest) *entity.AIResponse
	SuggestTreatmentPlan(ctx context.Context, req *entity.AIRequest) *entity.AIResponse
	AnalyzeNoShowRisk(ctx context.Context, req *entity.AIRequest) *entity.AIResponse
	GenerateFinancialInsights(ctx context.Context, req *entity.AIRequest) *entity.AIResponse
	Chat(ctx context.Context, req *entity.AIRequest) *entity.AIResponse
	GenerateMessage(ctx context.Context, req *entity.AIRequest) *entity.AIResponse
}
