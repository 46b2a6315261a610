package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/healthmate-ai/healthmate/internal/llm"
)

// InMemoryStore is a process-local vector memory using brute-force cosine
// similarity. Used by tests and single-process deployments without
// PostgreSQL. Safe for concurrent use.
type InMemoryStore struct {
	embedder llm.Embedder

	mu      sync.RWMutex
	records []storedRecord
	seq     int64
}

type storedRecord struct {
	Record
	embedding []float32
}

// NewInMemoryStore creates an empty in-memory vector store.
func NewInMemoryStore(embedder llm.Embedder) (*InMemoryStore, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	return &InMemoryStore{embedder: embedder}, nil
}

// Add embeds and stores one turn. Blank content is skipped silently.
func (s *InMemoryStore) Add(ctx context.Context, userID, sessionID, role, content string, metadata map[string]string) (AddStatus, error) {
	if userID == "" {
		return AddSkippedBlank, ErrEmptyUserID
	}
	if !validRole(role) {
		return AddSkippedBlank, ErrInvalidRole
	}
	if strings.TrimSpace(content) == "" {
		return AddSkippedBlank, nil
	}

	embedding, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return AddSkippedBlank, fmt.Errorf("embedding content: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.records = append(s.records, storedRecord{
		Record: Record{
			ID:        uuid.New(),
			UserID:    userID,
			SessionID: sessionID,
			Role:      role,
			Content:   content,
			Metadata:  metadata,
			Seq:       s.seq,
			CreatedAt: time.Now(),
		},
		embedding: embedding,
	})
	return AddStored, nil
}

// Search returns the k records most similar to the query, scoped to userID.
func (s *InMemoryStore) Search(ctx context.Context, userID, query string, k int, roleFilter string) ([]Result, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	k = clampTopK(k)

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []Result{}
	for _, rec := range s.records {
		if rec.UserID != userID {
			continue
		}
		if roleFilter != "" && rec.Role != roleFilter {
			continue
		}
		results = append(results, Result{
			Record:     rec.Record,
			Similarity: cosineSimilarity(embedding, rec.embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// SessionTurns returns a session's records in chronological order.
func (s *InMemoryStore) SessionTurns(_ context.Context, userID, sessionID string) ([]Record, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Record{}
	for _, rec := range s.records {
		if rec.UserID == userID && rec.SessionID == sessionID {
			out = append(out, rec.Record)
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

// DeleteUser removes all records of a user.
func (s *InMemoryStore) DeleteUser(_ context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, ErrEmptyUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteMatching(func(r storedRecord) bool { return r.UserID == userID }), nil
}

// DeleteSession removes all records of one session.
func (s *InMemoryStore) DeleteSession(_ context.Context, userID, sessionID string) (int64, error) {
	if userID == "" {
		return 0, ErrEmptyUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteMatching(func(r storedRecord) bool {
		return r.UserID == userID && r.SessionID == sessionID
	}), nil
}

// deleteMatching removes records matching the predicate. Caller holds the lock.
func (s *InMemoryStore) deleteMatching(match func(storedRecord) bool) int64 {
	kept := s.records[:0]
	var removed int64
	for _, rec := range s.records {
		if match(rec) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	return removed
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths or zero vectors yield 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
