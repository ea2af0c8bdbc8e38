package embedding

import (
	"context"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/odontosys/ai-backend/internal/config"
)

// Model dimensionality is fixed per embedding model and constant for the
// store's lifetime.
var modelDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
}

// Connector generates embeddings through the OpenAI API.
type Connector struct {
	client    *openai.Client
	model     string
	retryOpts []retry.Option
	logger    *zap.Logger
}

func NewConnector(cfg config.AIConfig, logger *zap.Logger) *Connector {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Connector{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.EmbeddingModel,
		retryOpts: cfg.Retry.ToRetryOptions(),
		logger:    logger,
	}
}

// Dimensions returns the vector length the configured model produces.
func (c *Connector) Dimensions() int {
	if d, ok := modelDimensions[c.model]; ok {
		return d
	}
	return 1536
}

// Embed maps text to a fixed-length vector. A provider answer without a
// vector is reported as an error, never as a zero vector.
func (c *Connector) Embed(ctx context.Context, text string) ([]float32, error) {
	ctxzap.Debug(ctx, "requesting embedding", zap.Int("text_length", len(text)))

	embedding, err := retry.DoWithData(func() ([]float32, error) {
		resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: []string{text},
			Model: openai.EmbeddingModel(c.model),
		})
		if err != nil {
			return nil, fmt.Errorf("create embeddings: %w", err)
		}

		if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
			return nil, fmt.Errorf("provider returned no embedding for model %q", c.model)
		}

		return resp.Data[0].Embedding, nil
	}, append(c.retryOpts, retry.Context(ctx))...)
	if err != nil {
		ctxzap.Error(ctx, "embedding request failed", zap.Error(err))
		return nil, err
	}

	return embedding, nil
}
