// Package memory provides per-user conversation memory backed by vector
// similarity search.
//
// Each non-blank conversation turn is embedded and stored as one record.
// Recall is cosine-similarity search scoped to a single user; turns never
// leak across users. Two backends exist: PostgresStore (pgvector) and
// InMemoryStore (brute-force cosine, for tests and single-process use).
package memory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptyUserID indicates a missing user identifier.
	ErrEmptyUserID = errors.New("user ID is required")

	// ErrInvalidRole indicates a role outside user/assistant.
	ErrInvalidRole = errors.New("invalid role")
)

// DefaultTopK is the default number of search results.
const DefaultTopK = 5

// MaxTopK caps search result counts.
const MaxTopK = 50

// AddStatus reports the outcome of an Add call.
type AddStatus int

const (
	// AddStored means the turn was embedded and persisted.
	AddStored AddStatus = iota
	// AddSkippedBlank means the turn was blank and silently skipped.
	AddSkippedBlank
)

// String returns the status name for logging.
func (s AddStatus) String() string {
	switch s {
	case AddStored:
		return "stored"
	case AddSkippedBlank:
		return "skipped_blank"
	default:
		return "unknown"
	}
}

// Record is one embedded conversation turn.
type Record struct {
	ID        uuid.UUID         `json:"id"`
	UserID    string            `json:"userId"`
	SessionID string            `json:"sessionId"`
	Role      string            `json:"role"`
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Seq       int64             `json:"-"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Result is a search hit with its cosine similarity to the query.
type Result struct {
	Record
	Similarity float64 `json:"similarity"`
}

// Store is the conversation memory interface.
//
// All methods are scoped to a single user; implementations must never
// return another user's records.
type Store interface {
	// Add embeds and stores one turn. Blank content (empty or whitespace
	// only) is skipped silently and reported via AddSkippedBlank.
	Add(ctx context.Context, userID, sessionID, role, content string, metadata map[string]string) (AddStatus, error)

	// Search returns up to k records ordered by cosine similarity
	// descending. roleFilter restricts results to one role when non-empty.
	// An empty index yields an empty slice, never an error.
	Search(ctx context.Context, userID, query string, k int, roleFilter string) ([]Result, error)

	// SessionTurns returns a session's records in chronological order
	// (created_at ascending, insertion order as tiebreak).
	SessionTurns(ctx context.Context, userID, sessionID string) ([]Record, error)

	// DeleteUser removes all records of a user. Idempotent; returns the
	// number of records removed.
	DeleteUser(ctx context.Context, userID string) (int64, error)

	// DeleteSession removes all records of one session. Idempotent;
	// returns the number of records removed.
	DeleteSession(ctx context.Context, userID, sessionID string) (int64, error)
}

// clampTopK normalizes a requested result count.
func clampTopK(k int) int {
	if k <= 0 {
		return DefaultTopK
	}
	if k > MaxTopK {
		return MaxTopK
	}
	return k
}

// validRole reports whether role is user or assistant.
func validRole(role string) bool {
	return role == "user" || role == "assistant"
}
