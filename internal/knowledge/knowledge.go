// Package knowledge provides the medical knowledge base: a built-in corpus
// of curated reference articles, a text splitter, and a vector index with
// similarity search.
//
// The corpus ships with the binary; Populate embeds it into the backing
// store once and is a no-op afterwards.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/healthmate-ai/healthmate/internal/llm"
	"github.com/healthmate-ai/healthmate/internal/log"
)

// DefaultTopK is the default number of search results.
const DefaultTopK = 3

// MaxTopK caps search result counts.
const MaxTopK = 20

// populateConcurrency bounds parallel embedding calls during Populate.
const populateConcurrency = 4

// ErrUnknownCategory indicates a category filter not present in the corpus.
var ErrUnknownCategory = errors.New("unknown category")

// SearchResult is one knowledge base hit.
type SearchResult struct {
	DocID      string  `json:"docId"`
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	ChunkIndex int     `json:"chunkIndex"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// storedChunk is one embedded corpus chunk ready for insertion.
type storedChunk struct {
	DocID      string
	Title      string
	Category   string
	ChunkIndex int
	Content    string
	Embedding  []float32
}

// chunkStore is the persistence backend for embedded chunks.
type chunkStore interface {
	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int64, error)

	// Insert stores one chunk.
	Insert(ctx context.Context, chunk storedChunk) error

	// Search returns the k chunks most similar to the embedding, ordered
	// by similarity descending. category filters when non-empty.
	Search(ctx context.Context, embedding []float32, k int, category string) ([]SearchResult, error)
}

// Index is the searchable medical knowledge base.
//
// Safe for concurrent use once populated.
type Index struct {
	embedder llm.Embedder
	store    chunkStore
	splitter *Splitter
	logger   log.Logger

	mu        sync.Mutex
	populated bool
}

// NewIndex creates a knowledge base index over the given backend.
func NewIndex(embedder llm.Embedder, store chunkStore, logger log.Logger) (*Index, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Index{
		embedder: embedder,
		store:    store,
		splitter: NewSplitter(),
		logger:   logger,
	}, nil
}

// Populate embeds the built-in corpus into the backing store. Idempotent:
// a store that already holds chunks is left untouched. Concurrent calls
// serialize; only the first does work.
func (x *Index) Populate(ctx context.Context) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.populated {
		return nil
	}

	count, err := x.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting knowledge chunks: %w", err)
	}
	if count > 0 {
		x.populated = true
		x.logger.Debug("knowledge base already populated", "chunks", count)
		return nil
	}

	x.logger.Info("populating knowledge base")

	type job struct {
		doc   Document
		index int
		text  string
	}
	jobs := []job{}
	for _, doc := range corpus {
		for i, chunk := range x.splitter.Split(doc.Content) {
			jobs = append(jobs, job{doc: doc, index: i, text: chunk.Text})
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(populateConcurrency)
	for _, j := range jobs {
		eg.Go(func() error {
			embedding, err := x.embed(egCtx, j.text)
			if err != nil {
				return fmt.Errorf("embedding chunk %d of %s: %w", j.index, j.doc.ID, err)
			}
			err = x.store.Insert(egCtx, storedChunk{
				DocID:      j.doc.ID,
				Title:      j.doc.Title,
				Category:   j.doc.Category,
				ChunkIndex: j.index,
				Content:    j.text,
				Embedding:  embedding,
			})
			if err != nil {
				return fmt.Errorf("storing chunk %d of %s: %w", j.index, j.doc.ID, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	x.populated = true
	x.logger.Info("knowledge base populated", "chunks", len(jobs), "documents", len(corpus))
	return nil
}

// Search returns the k chunks most relevant to the query. A blank query
// yields an empty result. category restricts results when non-empty and
// must name a known category.
func (x *Index) Search(ctx context.Context, query string, k int, category string) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []SearchResult{}, nil
	}
	if category != "" && !knownCategory(category) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if k <= 0 {
		k = DefaultTopK
	}
	if k > MaxTopK {
		k = MaxTopK
	}

	embedding, err := x.embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := x.store.Search(ctx, embedding, k, category)
	if err != nil {
		return nil, fmt.Errorf("searching knowledge base: %w", err)
	}
	return results, nil
}

func (x *Index) embed(ctx context.Context, text string) ([]float32, error) {
	embedCtx, cancel := context.WithTimeout(ctx, llm.EmbedTimeout)
	defer cancel()
	return x.embedder.Embed(embedCtx, text)
}

// Categories returns the distinct corpus categories, sorted.
func Categories() []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, doc := range corpus {
		if _, ok := seen[doc.Category]; ok {
			continue
		}
		seen[doc.Category] = struct{}{}
		out = append(out, doc.Category)
	}
	sort.Strings(out)
	return out
}

func knownCategory(category string) bool {
	for _, doc := range corpus {
		if doc.Category == category {
			return true
		}
	}
	return false
}
