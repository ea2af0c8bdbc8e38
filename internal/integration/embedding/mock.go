package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const mockDimensions = 1536

// MockConnector produces deterministic pseudo-embeddings so the service can
// run end to end without an API key. Identical text always yields the
// identical vector, which keeps cache and idempotence behavior realistic.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Dimensions() int {
	return mockDimensions
}

func (m *MockConnector) Embed(ctx context.Context, text string) ([]float32, error) {
	ctxzap.Debug(ctx, "[MOCK] generating embedding", zap.Int("text_length", len(text)))

	seed := sha256.Sum256([]byte(text))
	vector := make([]float32, mockDimensions)
	for i := range vector {
		chunk := seed[(i*4)%len(seed) : (i*4)%len(seed)+4]
		v := binary.BigEndian.Uint32(chunk) ^ uint32(i)
		vector[i] = float32(v%2000)/1000 - 1
	}

	return vector, nil
}
