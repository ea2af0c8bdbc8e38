package rag

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/odontosys/ai-backend/internal/entity"
)

// ResultCache memoizes ranked retrieval results under a TTL. It is the
// injected cache layer of the RAG engine; invalidation is a coarse
// full-namespace flush (see Engine.UpdateKnowledge).
//
// ResultCache is safe for concurrent use.
type ResultCache struct {
	ttl   time.Duration
	store *gocache.Cache
}

// NewResultCache creates a cache whose entries expire after ttl.
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		ttl:   ttl,
		store: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the cached ranked list for key, or ok=false on miss. The
// returned slice is a copy; callers may reorder or rewrite it without
// touching the cached entry.
func (c *ResultCache) Get(key string) ([]entity.KnowledgeResult, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}

	results, ok := v.([]entity.KnowledgeResult)
	if !ok {
		return nil, false
	}

	out := make([]entity.KnowledgeResult, len(results))
	copy(out, results)
	return out, true
}

// Set stores the ranked list under key with the configured TTL.
func (c *ResultCache) Set(key string, results []entity.KnowledgeResult) {
	c.store.Set(key, results, c.ttl)
}

// Flush drops every cached result. Called after knowledge updates: stale
// reads never survive, at the cost of evicting unrelated queries too.
func (c *ResultCache) Flush() {
	c.store.Flush()
}

// CacheKey derives the deterministic fingerprint addressing one cached
// result set: a SHA-256 over the normalized query and the request type.
func CacheKey(query string, reqType entity.RequestType) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s", reqType, normalized)))
	return hex.EncodeToString(sum[:])
}
