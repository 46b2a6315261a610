package chatlog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthmate-ai/healthmate/internal/log"
)

// turnCols is the standard SELECT column list for scanTurns.
const turnCols = `id, user_id, session_id, role, content, error_tag, embedded, seq, created_at`

// PostgresStore persists conversation turns in the chat_turns table.
//
// Safe for concurrent use by multiple goroutines.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger log.Logger
}

// NewPostgresStore creates a Postgres-backed conversation log.
func NewPostgresStore(pool *pgxpool.Pool, logger log.Logger) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &PostgresStore{pool: pool, logger: logger}, nil
}

// Append durably records a turn.
func (s *PostgresStore) Append(ctx context.Context, turn Turn) (uuid.UUID, error) {
	if err := validateTurn(turn); err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO chat_turns (user_id, session_id, role, content, error_tag, embedded)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		turn.UserID, turn.SessionID, turn.Role, turn.Content, turn.ErrorTag, turn.Embedded,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("appending turn: %w", err)
	}
	return id, nil
}

// SessionTurns returns all turns of a session in chronological order.
func (s *PostgresStore) SessionTurns(ctx context.Context, userID, sessionID string) ([]Turn, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+turnCols+`
		 FROM chat_turns
		 WHERE user_id = $1 AND session_id = $2
		 ORDER BY created_at ASC, seq ASC`,
		userID, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying session turns: %w", err)
	}
	defer rows.Close()

	return scanTurns(rows)
}

// Sessions returns per-session summaries for a user, most recent first.
func (s *PostgresStore) Sessions(ctx context.Context, userID string) ([]SessionSummary, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	rows, err := s.pool.Query(ctx,
		`SELECT session_id, COUNT(*), MIN(created_at), MAX(created_at)
		 FROM chat_turns
		 WHERE user_id = $1
		 GROUP BY session_id
		 ORDER BY MAX(created_at) DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	summaries := []SessionSummary{}
	for rows.Next() {
		var sum SessionSummary
		if err := rows.Scan(&sum.SessionID, &sum.MessageCount, &sum.StartedAt, &sum.LastActivity); err != nil {
			return nil, fmt.Errorf("scanning session summary: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return summaries, nil
}

// Insights returns aggregate counts plus the most recent user-role turns.
func (s *PostgresStore) Insights(ctx context.Context, userID string, recent int) (*Insights, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if recent <= 0 {
		recent = 10
	}

	ins := &Insights{}
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT session_id)
		 FROM chat_turns
		 WHERE user_id = $1`,
		userID,
	).Scan(&ins.TotalMessages, &ins.TotalSessions)
	if err != nil {
		return nil, fmt.Errorf("counting turns: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+turnCols+`
		 FROM chat_turns
		 WHERE user_id = $1 AND role = $2
		 ORDER BY created_at DESC, seq DESC
		 LIMIT $3`,
		userID, RoleUser, recent,
	)
	if err != nil {
		return nil, fmt.Errorf("querying recent turns: %w", err)
	}
	defer rows.Close()

	turns, err := scanTurns(rows)
	if err != nil {
		return nil, err
	}
	ins.RecentTopics = turns
	return ins, nil
}

// DeleteUser removes all turns of a user.
func (s *PostgresStore) DeleteUser(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, ErrEmptyUserID
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM chat_turns WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("deleting user turns: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteSession removes all turns of one session.
func (s *PostgresStore) DeleteSession(ctx context.Context, userID, sessionID string) (int64, error) {
	if userID == "" {
		return 0, ErrEmptyUserID
	}

	tag, err := s.pool.Exec(ctx,
		`DELETE FROM chat_turns WHERE user_id = $1 AND session_id = $2`,
		userID, sessionID,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting session turns: %w", err)
	}
	return tag.RowsAffected(), nil
}

// scanTurns reads Turn structs from pgx.Rows (standard column set).
func scanTurns(rows pgx.Rows) ([]Turn, error) {
	turns := []Turn{}
	for rows.Next() {
		var t Turn
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.SessionID, &t.Role, &t.Content,
			&t.ErrorTag, &t.Embedded, &t.Seq, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating turns: %w", err)
	}
	return turns, nil
}
