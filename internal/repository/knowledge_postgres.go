package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/odontosys/ai-backend/internal/entity"
	"github.com/odontosys/ai-backend/internal/rag"
)

var _ rag.KnowledgeStore = &KnowledgePostgres{}

// KnowledgePostgres persists knowledge entries in PostgreSQL and answers
// nearest-neighbor queries through the pgvector cosine-distance operator.
type KnowledgePostgres struct {
	db *pgxpool.Pool
}

func NewKnowledgePostgres(db *pgxpool.Pool) *KnowledgePostgres {
	return &KnowledgePostgres{db: db}
}

const searchNearestQuery = `
SELECT id, category, subcategory, title, content, metadata, created_at, updated_at,
       embedding <=> $1 AS distance
FROM knowledge_entries
WHERE is_active = TRUE
  AND category = ANY($2)
ORDER BY embedding <=> $1
LIMIT $3`

// SearchNearest returns active entries in the given categories ordered by
// ascending cosine distance to the query embedding.
func (r *KnowledgePostgres) SearchNearest(ctx context.Context, embedding []float32, categories []string, limit int) ([]entity.KnowledgeHit, error) {
	rows, err := r.db.Query(ctx, searchNearestQuery, pgvector.NewVector(embedding), categories, limit)
	if err != nil {
		return nil, fmt.Errorf("search knowledge entries: %w", err)
	}
	defer rows.Close()

	var hits []entity.KnowledgeHit
	for rows.Next() {
		var (
			id          pgtype.UUID
			subcategory pgtype.Text
			metadata    []byte
			createdAt   pgtype.Timestamptz
			updatedAt   pgtype.Timestamptz
			hit         entity.KnowledgeHit
		)

		err := rows.Scan(
			&id,
			&hit.Entry.Category,
			&subcategory,
			&hit.Entry.Title,
			&hit.Entry.Content,
			&metadata,
			&createdAt,
			&updatedAt,
			&hit.Distance,
		)
		if err != nil {
			return nil, fmt.Errorf("scan knowledge entry: %w", err)
		}

		hit.Entry.ID = uuid.UUID(id.Bytes).String()
		hit.Entry.Subcategory = subcategory.String
		hit.Entry.IsActive = true
		hit.Entry.CreatedAt = createdAt.Time
		hit.Entry.UpdatedAt = updatedAt.Time
		hit.Entry.Metadata = parseMetadata(metadata)

		hits = append(hits, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate knowledge entries: %w", err)
	}

	return hits, nil
}

const insertEntryQuery = `
INSERT INTO knowledge_entries
	(id, category, subcategory, title, content, embedding, metadata, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// Insert persists a new entry together with its embedding.
func (r *KnowledgePostgres) Insert(ctx context.Context, entry entity.KnowledgeEntry, embedding []float32) error {
	entryID, err := uuid.Parse(entry.ID)
	if err != nil {
		return fmt.Errorf("parse entry ID: %w", err)
	}

	metadataJSON, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	_, err = r.db.Exec(ctx, insertEntryQuery,
		pgtype.UUID{Bytes: entryID, Valid: true},
		entry.Category,
		pgtype.Text{String: entry.Subcategory, Valid: entry.Subcategory != ""},
		entry.Title,
		entry.Content,
		pgvector.NewVector(embedding),
		metadataJSON,
		entry.IsActive,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert knowledge entry: %w", err)
	}

	return nil
}

const updateContentQuery = `
UPDATE knowledge_entries
SET content = $2, embedding = $3, updated_at = now()
WHERE id = $1`

// UpdateContent replaces content, embedding and the updated timestamp in a
// single statement so the entry is never observed half-applied.
func (r *KnowledgePostgres) UpdateContent(ctx context.Context, id, content string, embedding []float32) error {
	entryID, err := uuid.Parse(id)
	if err != nil {
		// A malformed id cannot match any entry.
		return fmt.Errorf("%w: malformed id %q", entity.ErrKnowledgeNotFound, id)
	}

	tag, err := r.db.Exec(ctx, updateContentQuery,
		pgtype.UUID{Bytes: entryID, Valid: true},
		content,
		pgvector.NewVector(embedding),
	)
	if err != nil {
		return fmt.Errorf("update knowledge entry: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrKnowledgeNotFound
	}

	return nil
}

const deactivateEntryQuery = `
UPDATE knowledge_entries
SET is_active = FALSE, updated_at = now()
WHERE id = $1`

// Deactivate removes an entry from retrieval without deleting the row.
func (r *KnowledgePostgres) Deactivate(ctx context.Context, id string) error {
	entryID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: malformed id %q", entity.ErrKnowledgeNotFound, id)
	}

	tag, err := r.db.Exec(ctx, deactivateEntryQuery, pgtype.UUID{Bytes: entryID, Valid: true})
	if err != nil {
		return fmt.Errorf("deactivate knowledge entry: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrKnowledgeNotFound
	}

	return nil
}

func parseMetadata(raw []byte) map[string]string {
	if len(raw) == 0 {
		return nil
	}

	var metadata map[string]string
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return nil
	}

	return metadata
}
