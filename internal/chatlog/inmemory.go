package chatlog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore is a process-local conversation log.
//
// Used by tests and single-process deployments without PostgreSQL.
// Safe for concurrent use.
type InMemoryStore struct {
	mu    sync.RWMutex
	turns []Turn
	seq   int64
}

// NewInMemoryStore creates an empty in-memory conversation log.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Append records a turn.
func (s *InMemoryStore) Append(_ context.Context, turn Turn) (uuid.UUID, error) {
	if err := validateTurn(turn); err != nil {
		return uuid.Nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	turn.ID = uuid.New()
	turn.Seq = s.seq
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}
	s.turns = append(s.turns, turn)
	return turn.ID, nil
}

// SessionTurns returns all turns of a session in chronological order.
func (s *InMemoryStore) SessionTurns(_ context.Context, userID, sessionID string) ([]Turn, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Turn{}
	for _, t := range s.turns {
		if t.UserID == userID && t.SessionID == sessionID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Seq < out[j].Seq
	})
	return out, nil
}

// Sessions returns per-session summaries for a user, most recent first.
func (s *InMemoryStore) Sessions(_ context.Context, userID string) ([]SessionSummary, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	bySession := map[string]*SessionSummary{}
	for _, t := range s.turns {
		if t.UserID != userID {
			continue
		}
		sum, ok := bySession[t.SessionID]
		if !ok {
			sum = &SessionSummary{
				SessionID: t.SessionID,
				StartedAt: t.CreatedAt,
			}
			bySession[t.SessionID] = sum
		}
		sum.MessageCount++
		if t.CreatedAt.Before(sum.StartedAt) {
			sum.StartedAt = t.CreatedAt
		}
		if t.CreatedAt.After(sum.LastActivity) {
			sum.LastActivity = t.CreatedAt
		}
	}

	out := []SessionSummary{}
	for _, sum := range bySession {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastActivity.After(out[j].LastActivity)
	})
	return out, nil
}

// Insights returns aggregate counts plus the most recent user-role turns.
func (s *InMemoryStore) Insights(_ context.Context, userID string, recent int) (*Insights, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if recent <= 0 {
		recent = 10
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ins := &Insights{}
	sessions := map[string]struct{}{}
	var userTurns []Turn
	for _, t := range s.turns {
		if t.UserID != userID {
			continue
		}
		ins.TotalMessages++
		sessions[t.SessionID] = struct{}{}
		if t.Role == RoleUser {
			userTurns = append(userTurns, t)
		}
	}
	ins.TotalSessions = len(sessions)

	sort.SliceStable(userTurns, func(i, j int) bool {
		if !userTurns[i].CreatedAt.Equal(userTurns[j].CreatedAt) {
			return userTurns[i].CreatedAt.After(userTurns[j].CreatedAt)
		}
		return userTurns[i].Seq > userTurns[j].Seq
	})
	if len(userTurns) > recent {
		userTurns = userTurns[:recent]
	}
	ins.RecentTopics = userTurns
	return ins, nil
}

// DeleteUser removes all turns of a user.
func (s *InMemoryStore) DeleteUser(_ context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, ErrEmptyUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteMatching(func(t Turn) bool { return t.UserID == userID }), nil
}

// DeleteSession removes all turns of one session.
func (s *InMemoryStore) DeleteSession(_ context.Context, userID, sessionID string) (int64, error) {
	if userID == "" {
		return 0, ErrEmptyUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteMatching(func(t Turn) bool {
		return t.UserID == userID && t.SessionID == sessionID
	}), nil
}

// deleteMatching removes turns matching the predicate. Caller holds the lock.
func (s *InMemoryStore) deleteMatching(match func(Turn) bool) int64 {
	kept := s.turns[:0]
	var removed int64
	for _, t := range s.turns {
		if match(t) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.turns = kept
	return removed
}
