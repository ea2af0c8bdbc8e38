package rag

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/odontosys/ai-backend/internal/entity"
)

// Engine composes the query builder, cache layer, embedding provider and
// knowledge store into the single retrieval entry point of the system.
type Engine struct {
	embedder Embedder
	store    KnowledgeStore
	cache    *ResultCache
	logger   *zap.Logger
}

// NewEngine creates a RAG engine over the given collaborators.
func NewEngine(embedder Embedder, store KnowledgeStore, cache *ResultCache, logger *zap.Logger) *Engine {
	return &Engine{
		embedder: embedder,
		store:    store,
		cache:    cache,
		logger:   logger,
	}
}

// Search retrieves the knowledge entries most relevant to the request.
// Results come back ordered by descending similarity, at most limit rows.
// Cache hits within the TTL are returned unchanged without re-embedding.
//
// Concurrent misses for the same key may each embed and query independently;
// cache population makes no single-flight guarantee.
func (e *Engine) Search(ctx context.Context, reqType entity.RequestType, reqContext map[string]any, limit int) ([]entity.KnowledgeResult, error) {
	if !reqType.IsValid() {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidRequestType, reqType)
	}
	if limit <= 0 {
		limit = 5
	}

	query := BuildQuery(reqType, reqContext)
	key := CacheKey(query, reqType)

	if cached, ok := e.cache.Get(key); ok {
		ctxzap.Debug(ctx, "knowledge search cache hit",
			zap.String("type", string(reqType)),
			zap.Int("result_count", len(cached)),
		)
		return cached, nil
	}

	embedding, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, entity.NewDependencyError("embedding_provider", err)
	}

	hits, err := e.store.SearchNearest(ctx, embedding, searchCategories(reqType), limit)
	if err != nil {
		return nil, entity.NewDependencyError("knowledge_store", err)
	}

	results := make([]entity.KnowledgeResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, entity.KnowledgeResult{
			ID:         hit.Entry.ID,
			Category:   hit.Entry.Category,
			Title:      hit.Entry.Title,
			Content:    hit.Entry.Content,
			Metadata:   hit.Entry.Metadata,
			Similarity: similarityFromDistance(hit.Distance),
		})
	}

	e.cache.Set(key, results)

	ctxzap.Debug(ctx, "knowledge search completed",
		zap.String("type", string(reqType)),
		zap.Int("result_count", len(results)),
	)

	return results, nil
}

// AddKnowledge embeds content and inserts a new active entry. The cache is
// left untouched: already-cached result sets only see the new entry after
// their TTL expires.
func (e *Engine) AddKnowledge(ctx context.Context, input entity.AddKnowledgeInput) (*entity.KnowledgeEntry, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, entity.ErrEmptyContent
	}
	if strings.TrimSpace(input.Category) == "" {
		return nil, entity.ErrInvalidCategory
	}

	embedding, err := e.embedder.Embed(ctx, input.Content)
	if err != nil {
		return nil, entity.NewDependencyError("embedding_provider", err)
	}

	now := time.Now().UTC()
	entry := entity.KnowledgeEntry{
		ID:          uuid.New().String(),
		Category:    input.Category,
		Subcategory: input.Subcategory,
		Title:       input.Title,
		Content:     input.Content,
		Metadata:    input.Metadata,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := e.store.Insert(ctx, entry, embedding); err != nil {
		return nil, entity.NewDependencyError("knowledge_store", err)
	}

	ctxzap.Info(ctx, "knowledge entry added",
		zap.String("id", entry.ID),
		zap.String("category", entry.Category),
	)

	return &entry, nil
}

// UpdateKnowledge re-embeds the new content, updates the entry atomically
// and flushes the whole result cache: no stale read survives, unrelated
// cached queries are evicted too.
func (e *Engine) UpdateKnowledge(ctx context.Context, id, content string) error {
	if strings.TrimSpace(content) == "" {
		return entity.ErrEmptyContent
	}

	embedding, err := e.embedder.Embed(ctx, content)
	if err != nil {
		return entity.NewDependencyError("embedding_provider", err)
	}

	if err := e.store.UpdateContent(ctx, id, content, embedding); err != nil {
		if errors.Is(err, entity.ErrKnowledgeNotFound) {
			return err
		}
		return entity.NewDependencyError("knowledge_store", err)
	}

	e.cache.Flush()

	ctxzap.Info(ctx, "knowledge entry updated, result cache flushed",
		zap.String("id", id),
	)

	return nil
}

// DeactivateKnowledge removes the entry from retrieval and flushes the
// result cache, so no cached result set keeps serving the entry.
func (e *Engine) DeactivateKnowledge(ctx context.Context, id string) error {
	if err := e.store.Deactivate(ctx, id); err != nil {
		if errors.Is(err, entity.ErrKnowledgeNotFound) {
			return err
		}
		return entity.NewDependencyError("knowledge_store", err)
	}

	e.cache.Flush()

	ctxzap.Info(ctx, "knowledge entry deactivated, result cache flushed",
		zap.String("id", id),
	)

	return nil
}

// searchCategories widens the category filter with the two universal
// categories every search includes regardless of the requested type.
func searchCategories(reqType entity.RequestType) []string {
	return []string{string(reqType), entity.CategoryGeneral, entity.CategoryProtocols}
}

// similarityFromDistance converts a cosine distance into a similarity score
// in [0, 1], rounded to 4 decimal places.
func similarityFromDistance(distance float64) float64 {
	similarity := 1 - distance
	if similarity < 0 {
		similarity = 0
	}
	if similarity > 1 {
		similarity = 1
	}
	return math.Round(similarity*10000) / 10000
}
