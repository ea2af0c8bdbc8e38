package completion

import (
	"context"
	"encoding/json"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/odontosys/ai-backend/internal/entity"
)

// MockConnector returns canned completions for local development.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Name() string {
	return "mock"
}

func (m *MockConnector) Complete(ctx context.Context, req *entity.CompletionRequest) (*entity.CompletionResult, error) {
	ctxzap.Info(ctx, "[MOCK] generating completion", zap.Int("message_count", len(req.Messages)))

	content := "Resposta gerada em modo de desenvolvimento. Configure um provedor de IA real para respostas clínicas."
	if req.JSONMode {
		payload, _ := json.Marshal(map[string]any{
			"text":       content,
			"confidence": 0.85,
		})
		content = string(payload)
	}

	return &entity.CompletionResult{
		Content:      content,
		Model:        "mock",
		InputTokens:  32,
		OutputTokens: 24,
		FinishReason: "stop",
	}, nil
}
