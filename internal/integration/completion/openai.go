package completion

import (
	"context"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/odontosys/ai-backend/internal/config"
	"github.com/odontosys/ai-backend/internal/entity"
)

// OpenAIConnector answers completion requests through the OpenAI chat API.
type OpenAIConnector struct {
	client    *openai.Client
	model     string
	maxTokens int
	retryOpts []retry.Option
	logger    *zap.Logger
}

func NewOpenAIConnector(cfg config.AIConfig, logger *zap.Logger) *OpenAIConnector {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAIConnector{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		retryOpts: cfg.Retry.ToRetryOptions(),
		logger:    logger,
	}
}

func (c *OpenAIConnector) Name() string {
	return "openai"
}

func (c *OpenAIConnector) Complete(ctx context.Context, req *entity.CompletionRequest) (*entity.CompletionResult, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	apiReq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: float32(req.Temperature),
	}

	if req.JSONMode {
		apiReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	ctxzap.Debug(ctx, "requesting completion",
		zap.String("model", model),
		zap.Int("message_count", len(messages)),
	)

	resp, err := retry.DoWithData(func() (openai.ChatCompletionResponse, error) {
		return c.client.CreateChatCompletion(ctx, apiReq)
	}, append(c.retryOpts, retry.Context(ctx))...)
	if err != nil {
		ctxzap.Error(ctx, "completion request failed", zap.Error(err))
		return nil, fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("provider returned no choices for model %q", model)
	}

	return &entity.CompletionResult{
		Content:      resp.Choices[0].Message.Content,
		Model:        resp.Model,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		FinishReason: string(resp.Choices[0].FinishReason),
	}, nil
}
