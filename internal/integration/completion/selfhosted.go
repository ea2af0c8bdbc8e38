package completion

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/odontosys/ai-backend/internal/config"
	"github.com/odontosys/ai-backend/internal/entity"
	pkghttp "github.com/odontosys/ai-backend/pkg/http"
)

const chatEndpoint = "/api/chat"

// SelfHostedConnector talks to an Ollama-compatible model server, for
// clinics that run their completion model on premises.
type SelfHostedConnector struct {
	connector *pkghttp.Connector
	model     string
	maxTokens int
	retryOpts []retry.Option
	logger    *zap.Logger
}

func NewSelfHostedConnector(cfg config.AIConfig, logger *zap.Logger) *SelfHostedConnector {
	connector := pkghttp.NewConnector(
		&pkghttp.ConnectorConfig{
			BaseURL: cfg.BaseURL,
			Logger:  logger,
		},
		pkghttp.WithRequestTimeout(cfg.RequestTimeout),
		pkghttp.WithRequestLogging(),
		pkghttp.WithAuthToken(cfg.APIKey),
	)

	return &SelfHostedConnector{
		connector: connector,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		retryOpts: cfg.Retry.ToRetryOptions(),
		logger:    logger,
	}
}

func (c *SelfHostedConnector) Name() string {
	return "selfhosted"
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Format   string         `json:"format,omitempty"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Model           string      `json:"model"`
	Message         chatMessage `json:"message"`
	DoneReason      string      `json:"done_reason"`
	PromptEvalCount int         `json:"prompt_eval_count"`
	EvalCount       int         `json:"eval_count"`
}

func (c *SelfHostedConnector) Complete(ctx context.Context, req *entity.CompletionRequest) (*entity.CompletionResult, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	messages := make([]chatMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, chatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	apiReq := chatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
		Options: map[string]any{
			"temperature": req.Temperature,
			"num_predict": maxTokens,
		},
	}
	if req.JSONMode {
		apiReq.Format = "json"
	}

	ctxzap.Debug(ctx, "requesting completion from self-hosted model",
		zap.String("model", model),
		zap.Int("message_count", len(messages)),
	)

	resp, err := retry.DoWithData(func() (*chatResponse, error) {
		var out chatResponse
		if err := c.connector.DoRequest(ctx, http.MethodPost, chatEndpoint, apiReq, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}, append(c.retryOpts, retry.Context(ctx))...)
	if err != nil {
		ctxzap.Error(ctx, "self-hosted completion failed", zap.Error(err))
		return nil, fmt.Errorf("self-hosted chat completion: %w", err)
	}

	if resp.Message.Content == "" {
		return nil, fmt.Errorf("self-hosted model %q returned empty completion", model)
	}

	return &entity.CompletionResult{
		Content:      resp.Message.Content,
		Model:        resp.Model,
		InputTokens:  resp.PromptEvalCount,
		OutputTokens: resp.EvalCount,
		FinishReason: resp.DoneReason,
	}, nil
}
