package knowledge

import (
	"time"

	"github.com/odontosys/ai-backend/internal/entity"
)

// AddKnowledgeDTO is the ingestion payload.
type AddKnowledgeDTO struct {
	Category    string            `json:"category"`
	Subcategory string            `json:"subcategory,omitempty"`
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// UpdateKnowledgeDTO carries the replacement content for an entry.
type UpdateKnowledgeDTO struct {
	Content string `json:"content"`
}

// SearchKnowledgeDTO is a direct retrieval query.
type SearchKnowledgeDTO struct {
	Type    string         `json:"type"`
	Context map[string]any `json:"context,omitempty"`
	Limit   int            `json:"limit,omitempty"`
}

// KnowledgeEntryDTO mirrors a stored entry on the wire.
type KnowledgeEntryDTO struct {
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

// SearchResultDTO is one ranked hit.
type SearchResultDTO struct {
	ID         string            `json:"id"`
	Category   string            `json:"category"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Similarity float64           `json:"similarity"`
}

// SearchResponseDTO wraps the ranked results of one query.
type SearchResponseDTO struct {
	Type    string            `json:"type"`
	Results []SearchResultDTO `json:"results"`
}

func toEntityInput(dto *AddKnowledgeDTO) entity.AddKnowledgeInput {
	return entity.AddKnowledgeInput{
		Category:    dto.Category,
		Subcategory: dto.Subcategory,
		Title:       dto.Title,
		Content:     dto.Content,
		Metadata:    dto.Metadata,
	}
}

func toEntryDTO(entry *entity.KnowledgeEntry) *KnowledgeEntryDTO {
	return &KnowledgeEntryDTO{
		ID:          entry.ID,
		Category:    entry.Category,
		Subcategory: entry.Subcategory,
		Title:       entry.Title,
		Content:     entry.Content,
		Metadata:    entry.Metadata,
		IsActive:    entry.IsActive,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}
}

func toSearchResponseDTO(reqType string, results []entity.KnowledgeResult) *SearchResponseDTO {
	dtos := make([]SearchResultDTO, 0, len(results))
	for _, r := range results {
		dtos = append(dtos, SearchResultDTO{
			ID:         r.ID,
			Category:   r.Category,
			Title:      r.Title,
			Content:    r.Content,
			Metadata:   r.Metadata,
			Similarity: r.Similarity,
		})
	}

	return &SearchResponseDTO{
		Type:    reqType,
		Results: dtos,
	}
}
