package knowledge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmate-ai/healthmate/internal/knowledge"
	"github.com/healthmate-ai/healthmate/internal/log"
	"github.com/healthmate-ai/healthmate/internal/testutil"
)

func newIndex(t *testing.T) (*knowledge.Index, *testutil.MockEmbedder) {
	t.Helper()
	embedder := testutil.NewMockEmbedder()
	idx, err := knowledge.NewInMemoryIndex(embedder, log.NewNop())
	require.NoError(t, err)
	return idx, embedder
}

func TestPopulateIdempotent(t *testing.T) {
	ctx := context.Background()
	idx, embedder := newIndex(t)

	require.NoError(t, idx.Populate(ctx))
	calls := len(embedder.Calls())
	assert.Greater(t, calls, len(knowledge.Corpus()), "each document should produce multiple chunks")

	// Second call must not re-embed anything.
	require.NoError(t, idx.Populate(ctx))
	assert.Equal(t, calls, len(embedder.Calls()))
}

func TestSearchReturnsRelevantChunks(t *testing.T) {
	ctx := context.Background()
	idx, _ := newIndex(t)
	require.NoError(t, idx.Populate(ctx))

	results, err := idx.Search(ctx, "migraine triggers and treatment", 3, "")
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, r := range results {
		assert.NotEmpty(t, r.Content)
		assert.NotEmpty(t, r.Title)
		assert.NotEmpty(t, r.Category)
	}

	// Similarity is descending.
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Similarity, results[i].Similarity)
	}
}

func TestSearchBlankQuery(t *testing.T) {
	ctx := context.Background()
	idx, embedder := newIndex(t)
	require.NoError(t, idx.Populate(ctx))
	before := len(embedder.Calls())

	results, err := idx.Search(ctx, "   ", 3, "")
	require.NoError(t, err)
	assert.Empty(t, results)
	// Blank queries never reach the embedder.
	assert.Equal(t, before, len(embedder.Calls()))
}

func TestSearchCategoryFilter(t *testing.T) {
	ctx := context.Background()
	idx, _ := newIndex(t)
	require.NoError(t, idx.Populate(ctx))

	results, err := idx.Search(ctx, "pain", 5, "cardiology")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Equal(t, "cardiology", r.Category)
	}
}

func TestSearchUnknownCategory(t *testing.T) {
	ctx := context.Background()
	idx, _ := newIndex(t)
	require.NoError(t, idx.Populate(ctx))

	_, err := idx.Search(ctx, "pain", 5, "astrology")
	assert.ErrorIs(t, err, knowledge.ErrUnknownCategory)
}

func TestCategories(t *testing.T) {
	cats := knowledge.Categories()

	assert.Equal(t, []string{
		"cardiology",
		"endocrinology",
		"gastroenterology",
		"general-medicine",
		"immunology",
		"infectious-disease",
		"neurology",
		"psychiatry",
		"sleep-medicine",
	}, cats)
}
