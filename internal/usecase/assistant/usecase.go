package assistant

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/odontosys/ai-backend/internal/config"
	"github.com/odontosys/ai-backend/internal/entity"
	"github.com/odontosys/ai-backend/internal/pkg/logger"
)

const anonymousTenant = "anonymous"

// Usecase implements the AI orchestration operations. Every operation
// consumes an AIRequest of the matching type, enriches it with retrieved
// knowledge and wraps the provider's output into an AIResponse.
//
// Internal collaborators fail hard; this layer is the outer boundary that
// translates every failure into the failure variant of the envelope.
type Usecase struct {
	retriever Retriever
	provider  CompletionProvider
	limiter   RateLimiter
	costs     CostTracker
	aiCfg     config.AIConfig
	ragCfg    config.RAGConfig
	promptCfg config.PromptConfig
	features  config.FeatureConfig
	logger    *zap.Logger
}

// NewUsecase creates the orchestration use case over its collaborators.
func NewUsecase(
	retriever Retriever,
	provider CompletionProvider,
	limiter RateLimiter,
	costs CostTracker,
	aiCfg config.AIConfig,
	ragCfg config.RAGConfig,
	promptCfg config.PromptConfig,
	features config.FeatureConfig,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		retriever: retriever,
		provider:  provider,
		limiter:   limiter,
		costs:     costs,
		aiCfg:     aiCfg,
		ragCfg:    ragCfg,
		promptCfg: promptCfg,
		features:  features,
		logger:    logger,
	}
}

// GenerateClinicalEvolution writes an evolution note for a finished
// appointment.
func (uc *Usecase) GenerateClinicalEvolution(ctx context.Context, req *entity.AIRequest) *entity.AIResponse {
	return uc.run(ctx, req, entity.RequestTypeClinicalEvolution)
}

// SuggestDiagnosis proposes diagnostic hypotheses from symptoms and exam
// findings.
func (uc *Usecase) SuggestDiagnosis(ctx context.Context, req *entity.AIRequest) *entity.AIResponse {
	return uc.run(ctx, req, entity.RequestTypeDiagnosisSuggestion)
}

// SuggestTreatmentPlan proposes a staged treatment plan for an established
// diagnosis.
func (uc *Usecase) SuggestTreatmentPlan(ctx context.Context, req *entity.AIRequest) *entity.AIResponse {
	return uc.run(ctx, req, entity.RequestTypeTreatmentPlan)
}

// AnalyzeNoShowRisk scores the probability that a patient misses an
// upcoming appointment.
func (uc *Usecase) AnalyzeNoShowRisk(ctx context.Context, req *entity.AIRequest) *entity.AIResponse {
	return uc.run(ctx, req, entity.RequestTypeNoShowRisk)
}

// GenerateFinancialInsights summarizes and interprets a financial period.
func (uc *Usecase) GenerateFinancialInsights(ctx context.Context, req *entity.AIRequest) *entity.AIResponse {
	return uc.run(ctx, req, entity.RequestTypeFinancialInsight)
}

// Chat answers a free-form conversational turn.
func (uc *Usecase) Chat(ctx context.Context, req *entity.AIRequest) *entity.AIResponse {
	return uc.run(ctx, req, entity.RequestTypeChat)
}

// GenerateMessage drafts a patient-facing message (reminder, follow-up,
// recall).
func (uc *Usecase) GenerateMessage(ctx context.Context, req *entity.AIRequest) *entity.AIResponse {
	return uc.run(ctx, req, entity.RequestTypeMessageGeneration)
}

// run is the shared orchestration pipeline: validate, throttle, retrieve,
// complete, wrap.
func (uc *Usecase) run(ctx context.Context, req *entity.AIRequest, wantType entity.RequestType) *entity.AIResponse {
	ctx = logger.WithRequestType(ctx, string(wantType))

	if req == nil {
		return entity.NewFailureResponse(wantType, "request must not be nil")
	}

	if req.Type != wantType {
		err := &entity.ValidationError{
			Field:  "type",
			Reason: fmt.Sprintf("expected %q, got %q", wantType, req.Type),
		}
		ctxzap.Warn(ctx, "request type mismatch", zap.Error(err))
		return entity.NewFailureResponse(wantType, err.Error())
	}

	if !uc.features.Enabled(string(req.Type)) {
		return entity.NewFailureResponse(req.Type, entity.ErrFeatureDisabled.Error())
	}

	tenant := req.UserID
	if tenant == "" {
		tenant = anonymousTenant
	}

	if err := uc.limiter.Allow(tenant); err != nil {
		ctxzap.Warn(ctx, "request throttled", zap.String("tenant", tenant), zap.Error(err))
		return entity.NewFailureResponse(req.Type, err.Error())
	}

	if err := uc.costs.Authorize(); err != nil {
		ctxzap.Warn(ctx, "completion blocked by cost budget", zap.Error(err))
		return entity.NewFailureResponse(req.Type, err.Error())
	}

	knowledge, err := uc.retriever.Search(ctx, req.Type, req.Context, uc.ragCfg.MaxResults)
	if err != nil {
		ctxzap.Error(ctx, "knowledge retrieval failed", zap.Error(err))
		return entity.NewFailureResponse(req.Type, err.Error())
	}

	relevant := filterBySimilarity(knowledge, uc.ragCfg.SimilarityThreshold)

	result, err := uc.provider.Complete(ctx, uc.buildCompletionRequest(req, relevant))
	if err != nil {
		depErr := entity.NewDependencyError("completion_provider", err)
		ctxzap.Error(ctx, "completion failed", zap.Error(depErr))
		return entity.NewFailureResponse(req.Type, depErr.Error())
	}

	costUSD := uc.costs.Record(result.Model, result.InputTokens, result.OutputTokens)

	content, confidence := parseCompletion(result.Content, relevant)

	ctxzap.Info(ctx, "orchestration completed",
		zap.String("provider", uc.provider.Name()),
		zap.String("model", result.Model),
		zap.Int("knowledge_count", len(relevant)),
		zap.Float64("confidence", confidence),
	)

	return entity.NewSuccessResponse(req.Type, content, confidence, map[string]any{
		"provider":        uc.provider.Name(),
		"model":           result.Model,
		"input_tokens":    result.InputTokens,
		"output_tokens":   result.OutputTokens,
		"cost_usd":        costUSD,
		"knowledge_count": len(relevant),
	})
}

func (uc *Usecase) buildCompletionRequest(req *entity.AIRequest, knowledge []entity.KnowledgeResult) *entity.CompletionRequest {
	completionReq := &entity.CompletionRequest{
		Messages:    buildMessages(req, knowledge, uc.promptCfg),
		MaxTokens:   uc.aiCfg.MaxTokens,
		Temperature: uc.aiCfg.Temperature,
		JSONMode:    true,
	}

	// Call-specific tuning knobs override the configured defaults.
	if model, ok := req.Options["model"].(string); ok && model != "" {
		completionReq.Model = model
	}
	if temp, ok := req.Options["temperature"].(float64); ok {
		completionReq.Temperature = temp
	}
	switch maxTokens := req.Options["max_tokens"].(type) {
	case int:
		completionReq.MaxTokens = maxTokens
	case float64:
		completionReq.MaxTokens = int(maxTokens)
	}

	return completionReq
}

func filterBySimilarity(results []entity.KnowledgeResult, threshold float64) []entity.KnowledgeResult {
	if threshold <= 0 {
		return results
	}

	filtered := make([]entity.KnowledgeResult, 0, len(results))
	for _, r := range results {
		if r.Similarity >= threshold {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
