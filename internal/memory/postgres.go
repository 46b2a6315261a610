package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/healthmate-ai/healthmate/internal/llm"
	"github.com/healthmate-ai/healthmate/internal/log"
)

// PostgresStore persists embedded turns in the conversation_vectors table.
//
// Similarity search uses the pgvector cosine distance operator; the table
// carries an HNSW index so recall stays fast as history grows. Safe for
// concurrent use by multiple goroutines.
type PostgresStore struct {
	pool     *pgxpool.Pool
	embedder llm.Embedder
	logger   log.Logger
}

// NewPostgresStore creates a Postgres-backed vector memory.
func NewPostgresStore(pool *pgxpool.Pool, embedder llm.Embedder, logger log.Logger) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &PostgresStore{pool: pool, embedder: embedder, logger: logger}, nil
}

// Add embeds and stores one turn. Blank content is skipped silently.
func (s *PostgresStore) Add(ctx context.Context, userID, sessionID, role, content string, metadata map[string]string) (AddStatus, error) {
	if userID == "" {
		return AddSkippedBlank, ErrEmptyUserID
	}
	if !validRole(role) {
		return AddSkippedBlank, ErrInvalidRole
	}
	if strings.TrimSpace(content) == "" {
		s.logger.Debug("skipping blank memory entry",
			"user_id", userID,
			"session_id", sessionID)
		return AddSkippedBlank, nil
	}

	embedCtx, cancel := context.WithTimeout(ctx, llm.EmbedTimeout)
	defer cancel()

	embedding, err := s.embedder.Embed(embedCtx, content)
	if err != nil {
		return AddSkippedBlank, fmt.Errorf("embedding content: %w", err)
	}

	if metadata == nil {
		metadata = map[string]string{}
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO conversation_vectors (user_id, session_id, role, content, metadata, embedding)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, sessionID, role, content, metadata, pgvector.NewVector(embedding),
	)
	if err != nil {
		return AddSkippedBlank, fmt.Errorf("inserting memory record: %w", err)
	}
	return AddStored, nil
}

// Search returns the k records most similar to the query, scoped to userID.
func (s *PostgresStore) Search(ctx context.Context, userID, query string, k int, roleFilter string) ([]Result, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	k = clampTopK(k)

	embedCtx, cancel := context.WithTimeout(ctx, llm.EmbedTimeout)
	defer cancel()

	embedding, err := s.embedder.Embed(embedCtx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	vec := pgvector.NewVector(embedding)

	var rows pgx.Rows
	if roleFilter != "" {
		rows, err = s.pool.Query(ctx,
			`SELECT id, user_id, session_id, role, content, metadata, seq, created_at,
			        1 - (embedding <=> $2) AS similarity
			 FROM conversation_vectors
			 WHERE user_id = $1 AND role = $4
			 ORDER BY embedding <=> $2
			 LIMIT $3`,
			userID, vec, k, roleFilter,
		)
	} else {
		rows, err = s.pool.Query(ctx,
			`SELECT id, user_id, session_id, role, content, metadata, seq, created_at,
			        1 - (embedding <=> $2) AS similarity
			 FROM conversation_vectors
			 WHERE user_id = $1
			 ORDER BY embedding <=> $2
			 LIMIT $3`,
			userID, vec, k,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("querying memory: %w", err)
	}
	defer rows.Close()

	results := []Result{}
	for rows.Next() {
		var r Result
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.SessionID, &r.Role, &r.Content,
			&r.Metadata, &r.Seq, &r.CreatedAt, &r.Similarity,
		); err != nil {
			return nil, fmt.Errorf("scanning memory result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating memory results: %w", err)
	}
	return results, nil
}

// SessionTurns returns a session's records in chronological order.
func (s *PostgresStore) SessionTurns(ctx context.Context, userID, sessionID string) ([]Record, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, session_id, role, content, metadata, seq, created_at
		 FROM conversation_vectors
		 WHERE user_id = $1 AND session_id = $2
		 ORDER BY created_at ASC, seq ASC`,
		userID, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying session memory: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var r Record
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.SessionID, &r.Role, &r.Content,
			&r.Metadata, &r.Seq, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning memory record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating memory records: %w", err)
	}
	return records, nil
}

// DeleteUser removes all records of a user.
func (s *PostgresStore) DeleteUser(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, ErrEmptyUserID
	}

	tag, err := s.pool.Exec(ctx,
		`DELETE FROM conversation_vectors WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("deleting user memory: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteSession removes all records of one session.
func (s *PostgresStore) DeleteSession(ctx context.Context, userID, sessionID string) (int64, error) {
	if userID == "" {
		return 0, ErrEmptyUserID
	}

	tag, err := s.pool.Exec(ctx,
		`DELETE FROM conversation_vectors WHERE user_id = $1 AND session_id = $2`,
		userID, sessionID,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting session memory: %w", err)
	}
	return tag.RowsAffected(), nil
}
