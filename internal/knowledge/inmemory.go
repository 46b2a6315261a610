package knowledge

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/healthmate-ai/healthmate/internal/llm"
	"github.com/healthmate-ai/healthmate/internal/log"
)

// NewInMemoryIndex creates an index backed by a process-local chunk store.
// Used by tests and single-process deployments without PostgreSQL.
func NewInMemoryIndex(embedder llm.Embedder, logger log.Logger) (*Index, error) {
	return NewIndex(embedder, &inMemoryChunks{}, logger)
}

// inMemoryChunks is a brute-force cosine similarity chunk store.
type inMemoryChunks struct {
	mu     sync.RWMutex
	chunks []storedChunk
}

func (s *inMemoryChunks) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.chunks)), nil
}

func (s *inMemoryChunks) Insert(_ context.Context, chunk storedChunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.chunks {
		if existing.DocID == chunk.DocID && existing.ChunkIndex == chunk.ChunkIndex {
			return nil
		}
	}
	s.chunks = append(s.chunks, chunk)
	return nil
}

func (s *inMemoryChunks) Search(_ context.Context, embedding []float32, k int, category string) ([]SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []SearchResult{}
	for _, chunk := range s.chunks {
		if category != "" && chunk.Category != category {
			continue
		}
		results = append(results, SearchResult{
			DocID:      chunk.DocID,
			Title:      chunk.Title,
			Category:   chunk.Category,
			ChunkIndex: chunk.ChunkIndex,
			Content:    chunk.Content,
			Similarity: cosine(embedding, chunk.Embedding),
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

// cosine computes cosine similarity; mismatched or zero vectors yield 0.
func cosine(a, b []float32) float64 {
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
