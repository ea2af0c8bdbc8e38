package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/odontosys/ai-backend/internal/entity"
)

func TestMalformedEntryID(t *testing.T) {
	// Malformed ids are rejected before any statement runs, so no pool is
	// needed here.
	repo := NewKnowledgePostgres(nil)
	ctx := context.Background()

	t.Run("update reports not-found", func(t *testing.T) {
		err := repo.UpdateContent(ctx, "not-a-uuid", "conteúdo", []float32{0.1})
		assert.ErrorIs(t, err, entity.ErrKnowledgeNotFound)
	})

	t.Run("deactivate reports not-found", func(t *testing.T) {
		err := repo.Deactivate(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, entity.ErrKnowledgeNotFound)
	})
}
