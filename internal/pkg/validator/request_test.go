package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontosys/ai-backend/internal/entity"
)

func TestValidateAIRequest(t *testing.T) {
	v := NewValidator()

	t.Run("accepts a well-formed request", func(t *testing.T) {
		assert.NoError(t, v.ValidateAIRequest(entity.NewChatRequest("olá", nil)))
	})

	t.Run("rejects nil", func(t *testing.T) {
		err := v.ValidateAIRequest(nil)
		var vErr *entity.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "body", vErr.Field)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		err := v.ValidateAIRequest(&entity.AIRequest{Type: "prescription"})
		var vErr *entity.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "type", vErr.Field)
	})

	t.Run("chat requires a user message", func(t *testing.T) {
		err := v.ValidateAIRequest(&entity.AIRequest{Type: entity.RequestTypeChat, UserMessage: "  "})
		var vErr *entity.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "user_message", vErr.Field)
	})
}

func TestValidateAddKnowledge(t *testing.T) {
	v := NewValidator()

	valid := entity.AddKnowledgeInput{
		Category: "protocols",
		Title:    "Profilaxia antibiótica",
		Content:  "Amoxicilina 2g uma hora antes.",
	}

	t.Run("accepts a complete payload", func(t *testing.T) {
		input := valid
		assert.NoError(t, v.ValidateAddKnowledge(&input))
	})

	tests := []struct {
		name   string
		mutate func(*entity.AddKnowledgeInput)
		field  string
	}{
		{"missing category", func(i *entity.AddKnowledgeInput) { i.Category = " " }, "category"},
		{"missing title", func(i *entity.AddKnowledgeInput) { i.Title = "" }, "title"},
		{"missing content", func(i *entity.AddKnowledgeInput) { i.Content = "" }, "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			var vErr *entity.ValidationError
			require.ErrorAs(t, v.ValidateAddKnowledge(&input), &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestValidateUpdateKnowledge(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateUpdateKnowledge("id-1", "novo conteúdo"))

	var vErr *entity.ValidationError
	require.ErrorAs(t, v.ValidateUpdateKnowledge("", "conteúdo"), &vErr)
	assert.Equal(t, "id", vErr.Field)

	require.ErrorAs(t, v.ValidateUpdateKnowledge("id-1", "  "), &vErr)
	assert.Equal(t, "content", vErr.Field)
}
