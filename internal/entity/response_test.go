package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSuccessResponse(t *testing.T) {
	t.Run("builds success envelope", func(t *testing.T) {
		resp := NewSuccessResponse(RequestTypeChat, "olá", 0.9, map[string]any{"model": "gpt-4o-mini"})

		assert.True(t, resp.Success)
		assert.Equal(t, RequestTypeChat, resp.Type)
		assert.Equal(t, "olá", resp.Content)
		assert.Equal(t, 0.9, resp.Confidence)
		assert.Empty(t, resp.Error)
		assert.Equal(t, "gpt-4o-mini", resp.Metadata["model"])
	})

	t.Run("clamps confidence to [0, 1]", func(t *testing.T) {
		assert.Equal(t, 0.0, NewSuccessResponse(RequestTypeChat, "x", -0.5, nil).Confidence)
		assert.Equal(t, 1.0, NewSuccessResponse(RequestTypeChat, "x", 1.7, nil).Confidence)
	})
}

func TestNewFailureResponse(t *testing.T) {
	t.Run("builds failure envelope", func(t *testing.T) {
		resp := NewFailureResponse(RequestTypeDiagnosisSuggestion, "provider unavailable")

		assert.False(t, resp.Success)
		assert.Equal(t, RequestTypeDiagnosisSuggestion, resp.Type)
		assert.Nil(t, resp.Content)
		assert.Equal(t, 0.0, resp.Confidence)
		assert.Equal(t, "provider unavailable", resp.Error)
	})

	t.Run("never produces an empty error message", func(t *testing.T) {
		resp := NewFailureResponse(RequestTypeChat, "")
		require.NotEmpty(t, resp.Error)
	})
}

func TestConfidenceRouting(t *testing.T) {
	tests := []struct {
		name           string
		confidence     float64
		highConfidence bool
		requiresReview bool
	}{
		{"well above high threshold", 0.95, true, false},
		{"exactly at high threshold", 0.80, true, false},
		{"inside the silent band", 0.75, false, false},
		{"just below review threshold", 0.69, false, true},
		{"exactly at review threshold", 0.70, false, false},
		{"zero confidence", 0.0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewSuccessResponse(RequestTypeChat, "x", tt.confidence, nil)
			assert.Equal(t, tt.highConfidence, resp.IsHighConfidence())
			assert.Equal(t, tt.requiresReview, resp.RequiresReview())
		})
	}

	t.Run("failures always require review and are never high confidence", func(t *testing.T) {
		resp := NewFailureResponse(RequestTypeChat, "boom")
		assert.False(t, resp.IsHighConfidence())
		assert.True(t, resp.RequiresReview())
	})
}
