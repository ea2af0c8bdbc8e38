package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontosys/ai-backend/internal/entity"
	"github.com/odontosys/ai-backend/internal/pkg/validator"
)

type stubEngine struct {
	searchResults  []entity.KnowledgeResult
	searchErr      error
	addErr         error
	updateErr      error
	deactivateErr  error
	updatedID      string
	updatedText    string
	deactivatedIDs []string
}

func (s *stubEngine) Search(_ context.Context, _ entity.RequestType, _ map[string]any, _ int) ([]entity.KnowledgeResult, error) {
	return s.searchResults, s.searchErr
}

func (s *stubEngine) AddKnowledge(_ context.Context, input entity.AddKnowledgeInput) (*entity.KnowledgeEntry, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	now := time.Now().UTC()
	return &entity.KnowledgeEntry{
		ID:        "generated-id",
		Category:  input.Category,
		Title:     input.Title,
		Content:   input.Content,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *stubEngine) UpdateKnowledge(_ context.Context, id, content string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedID = id
	s.updatedText = content
	return nil
}

func (s *stubEngine) DeactivateKnowledge(_ context.Context, id string) error {
	if s.deactivateErr != nil {
		return s.deactivateErr
	}
	s.deactivatedIDs = append(s.deactivatedIDs, id)
	return nil
}

func newTestRouter(engine KnowledgeEngine) chi.Router {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(engine, validator.NewValidator()))
	return r
}

func TestAddKnowledge(t *testing.T) {
	t.Run("creates an entry", func(t *testing.T) {
		router := newTestRouter(&stubEngine{})

		body := `{"category": "protocols", "title": "Profilaxia", "content": "Amoxicilina 2g."}`
		req := httptest.NewRequest(http.MethodPost, "/knowledge", strings.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var dto KnowledgeEntryDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
		assert.Equal(t, "generated-id", dto.ID)
		assert.True(t, dto.IsActive)
	})

	t.Run("missing fields are a 400", func(t *testing.T) {
		router := newTestRouter(&stubEngine{})

		req := httptest.NewRequest(http.MethodPost, "/knowledge", strings.NewReader(`{"category": "x"}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("embedding outage is a 502", func(t *testing.T) {
		engine := &stubEngine{addErr: entity.NewDependencyError("embedding_provider", errors.New("timeout"))}
		router := newTestRouter(engine)

		body := `{"category": "protocols", "title": "t", "content": "c"}`
		req := httptest.NewRequest(http.MethodPost, "/knowledge", strings.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestUpdateKnowledge(t *testing.T) {
	t.Run("updates the entry content", func(t *testing.T) {
		engine := &stubEngine{}
		router := newTestRouter(engine)

		req := httptest.NewRequest(http.MethodPut, "/knowledge/abc-123", strings.NewReader(`{"content": "revisado"}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "abc-123", engine.updatedID)
		assert.Equal(t, "revisado", engine.updatedText)
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		engine := &stubEngine{updateErr: entity.ErrKnowledgeNotFound}
		router := newTestRouter(engine)

		req := httptest.NewRequest(http.MethodPut, "/knowledge/missing", strings.NewReader(`{"content": "x"}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("blank content is a 400", func(t *testing.T) {
		router := newTestRouter(&stubEngine{})

		req := httptest.NewRequest(http.MethodPut, "/knowledge/abc", strings.NewReader(`{"content": "  "}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeactivateKnowledge(t *testing.T) {
	t.Run("hides the entry from retrieval", func(t *testing.T) {
		engine := &stubEngine{}
		router := newTestRouter(engine)

		req := httptest.NewRequest(http.MethodDelete, "/knowledge/abc-123", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, []string{"abc-123"}, engine.deactivatedIDs)
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		router := newTestRouter(&stubEngine{deactivateErr: entity.ErrKnowledgeNotFound})

		req := httptest.NewRequest(http.MethodDelete, "/knowledge/missing", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSearchKnowledge(t *testing.T) {
	t.Run("returns ranked results", func(t *testing.T) {
		engine := &stubEngine{searchResults: []entity.KnowledgeResult{
			{ID: "a", Title: "Protocolo", Similarity: 0.91},
		}}
		router := newTestRouter(engine)

		body := `{"type": "chat", "context": {"user_message": "protocolo"}, "limit": 3}`
		req := httptest.NewRequest(http.MethodPost, "/knowledge/search", strings.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var dto SearchResponseDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
		assert.Equal(t, "chat", dto.Type)
		require.Len(t, dto.Results, 1)
		assert.Equal(t, 0.91, dto.Results[0].Similarity)
	})

	t.Run("unknown type is a 400", func(t *testing.T) {
		router := newTestRouter(&stubEngine{})

		req := httptest.NewRequest(http.MethodPost, "/knowledge/search", strings.NewReader(`{"type": "bogus"}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store outage is a 502", func(t *testing.T) {
		engine := &stubEngine{searchErr: entity.NewDependencyError("knowledge_store", errors.New("conn refused"))}
		router := newTestRouter(engine)

		body := `{"type": "chat", "context": {"user_message": "x"}}`
		req := httptest.NewRequest(http.MethodPost, "/knowledge/search", strings.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
