package entity

import "time"

// Knowledge categories that are always included in retrieval regardless of
// the requested type.
const (
	CategoryGeneral   = "general"
	CategoryProtocols = "protocols"
)

// KnowledgeEntry is a unit of retrievable domain knowledge. The embedding is
// computed from Content at write time and has the fixed dimensionality of
// the configured embedding model. Entries are never hard-deleted; IsActive
// gates retrieval instead.
type KnowledgeEntry struct {
	ID          string            `json:"id"`
	Category    string            `json:"category"`
	Subcategory string            `json:"subcategory,omitempty"`
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	IsActive    bool              `json:"is_active"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// KnowledgeResult is one ranked retrieval hit. Similarity is 1 - cosine
// distance, rounded to 4 decimal places and clamped to [0, 1].
type KnowledgeResult struct {
	ID         string            `json:"id"`
	Category   string            `json:"category"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Similarity float64           `json:"similarity"`
}

// KnowledgeHit is a raw nearest-neighbor row as produced by the store:
// the matched entry plus its cosine distance to the query embedding.
type KnowledgeHit struct {
	Entry    KnowledgeEntry
	Distance float64
}

// AddKnowledgeInput carries the caller-supplied fields for ingestion.
type AddKnowledgeInput struct {
	Category    string
	Title       string
	Content     string
	Subcategory string
	Metadata    map[string]string
}
