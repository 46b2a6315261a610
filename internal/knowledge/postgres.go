package knowledge

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/healthmate-ai/healthmate/internal/llm"
	"github.com/healthmate-ai/healthmate/internal/log"
)

// NewPostgresIndex creates an index backed by the knowledge_chunks table.
func NewPostgresIndex(embedder llm.Embedder, pool *pgxpool.Pool, logger log.Logger) (*Index, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	return NewIndex(embedder, &postgresChunks{pool: pool}, logger)
}

// postgresChunks stores embedded chunks in the knowledge_chunks table.
type postgresChunks struct {
	pool *pgxpool.Pool
}

func (s *postgresChunks) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM knowledge_chunks`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

func (s *postgresChunks) Insert(ctx context.Context, chunk storedChunk) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO knowledge_chunks (doc_id, title, category, chunk_index, content, embedding)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (doc_id, chunk_index) DO NOTHING`,
		chunk.DocID, chunk.Title, chunk.Category, chunk.ChunkIndex,
		chunk.Content, pgvector.NewVector(chunk.Embedding),
	)
	if err != nil {
		return fmt.Errorf("inserting chunk: %w", err)
	}
	return nil
}

func (s *postgresChunks) Search(ctx context.Context, embedding []float32, k int, category string) ([]SearchResult, error) {
	vec := pgvector.NewVector(embedding)

	query := `SELECT doc_id, title, category, chunk_index, content,
	                 1 - (embedding <=> $1) AS similarity
	          FROM knowledge_chunks`
	args := []any{vec, k}
	if category != "" {
		query += ` WHERE category = $3`
		args = append(args, category)
	}
	query += `
	          ORDER BY embedding <=> $1
	          LIMIT $2`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	results := []SearchResult{}
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(
			&r.DocID, &r.Title, &r.Category, &r.ChunkIndex, &r.Content, &r.Similarity,
		); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return results, nil
}
