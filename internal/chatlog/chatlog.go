// Package chatlog provides the durable conversation log.
//
// Every chat turn is appended here before any model call is made; the log is
// the source of truth for session history, summaries, and insights. Vector
// recall lives separately in internal/memory.
package chatlog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrEmptyUserID indicates a missing user identifier.
var ErrEmptyUserID = errors.New("user ID is required")

// ErrInvalidRole indicates a role outside user/assistant.
var ErrInvalidRole = errors.New("invalid role")

// ValidRole reports whether role is one of the known conversation roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAssistant
}

// Turn is a single logged conversation turn.
type Turn struct {
	ID        uuid.UUID
	UserID    string
	SessionID string
	Role      string
	Content   string
	// ErrorTag is non-empty when the turn was persisted after an upstream
	// failure (partial assistant responses).
	ErrorTag string
	// Embedded records whether the turn was also written to vector memory.
	Embedded  bool
	Seq       int64
	CreatedAt time.Time
}

// SessionSummary describes one conversation session of a user.
type SessionSummary struct {
	SessionID    string    `json:"sessionId"`
	MessageCount int       `json:"messageCount"`
	StartedAt    time.Time `json:"startedAt"`
	LastActivity time.Time `json:"lastActivity"`
}

// Insights aggregates a user's conversation history.
type Insights struct {
	TotalMessages int    `json:"totalMessages"`
	TotalSessions int    `json:"totalSessions"`
	RecentTopics  []Turn `json:"-"`
}

// Store is the durable conversation log interface.
//
// Implementations: PostgresStore (production) and InMemoryStore (tests,
// single-process deployments).
type Store interface {
	// Append durably records a turn and returns its assigned ID.
	Append(ctx context.Context, turn Turn) (uuid.UUID, error)

	// SessionTurns returns all turns of a session in chronological order
	// (created_at ascending, insertion order as tiebreak).
	SessionTurns(ctx context.Context, userID, sessionID string) ([]Turn, error)

	// Sessions returns per-session summaries for a user, most recent first.
	Sessions(ctx context.Context, userID string) ([]SessionSummary, error)

	// Insights returns aggregate counts plus the user's most recent
	// user-role turns (up to recent items).
	Insights(ctx context.Context, userID string, recent int) (*Insights, error)

	// DeleteUser removes all turns of a user. Idempotent; returns the
	// number of turns removed.
	DeleteUser(ctx context.Context, userID string) (int64, error)

	// DeleteSession removes all turns of one session. Idempotent; returns
	// the number of turns removed.
	DeleteSession(ctx context.Context, userID, sessionID string) (int64, error)
}

// validateTurn checks required fields before persisting.
func validateTurn(turn Turn) error {
	if turn.UserID == "" {
		return ErrEmptyUserID
	}
	if !ValidRole(turn.Role) {
		return ErrInvalidRole
	}
	return nil
}
