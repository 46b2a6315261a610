package memory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmate-ai/healthmate/internal/memory"
	"github.com/healthmate-ai/healthmate/internal/testutil"
)

func newStore(t *testing.T) (*memory.InMemoryStore, *testutil.MockEmbedder) {
	t.Helper()
	embedder := testutil.NewMockEmbedder()
	store, err := memory.NewInMemoryStore(embedder)
	require.NoError(t, err)
	return store, embedder
}

func TestAddAndRecallExactText(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	seed := []string{
		"I have been having headaches every morning",
		"My knee hurts after running",
		"I sleep about five hours a night",
	}
	for _, content := range seed {
		status, err := store.Add(ctx, "u1", "s1", "user", content, nil)
		require.NoError(t, err)
		assert.Equal(t, memory.AddStored, status)
	}

	// Searching with a stored text must rank that record first with
	// similarity 1 (identical deterministic embeddings).
	results, err := store.Search(ctx, "u1", "My knee hurts after running", 3, "")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "My knee hurts after running", results[0].Content)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-6)
}

func TestSearchRespectsK(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	for i := 0; i < 10; i++ {
		_, err := store.Add(ctx, "u1", "s1", "user", fmt.Sprintf("entry %d", i), nil)
		require.NoError(t, err)
	}

	results, err := store.Search(ctx, "u1", "entry 3", 4, "")
	require.NoError(t, err)
	assert.Len(t, results, 4)
}

func TestSearchIsolatedByUser(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	_, err := store.Add(ctx, "u1", "s1", "user", "mine", nil)
	require.NoError(t, err)
	_, err = store.Add(ctx, "u2", "s1", "user", "theirs", nil)
	require.NoError(t, err)

	results, err := store.Search(ctx, "u1", "mine", 10, "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "u1", results[0].UserID)
}

func TestSearchRoleFilter(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	_, err := store.Add(ctx, "u1", "s1", "user", "question about fever", nil)
	require.NoError(t, err)
	_, err = store.Add(ctx, "u1", "s1", "assistant", "advice about fever", nil)
	require.NoError(t, err)

	results, err := store.Search(ctx, "u1", "fever", 10, "assistant")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "assistant", results[0].Role)
}

func TestSearchEmptyIndex(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	results, err := store.Search(ctx, "u1", "anything", 5, "")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAddSkipsBlankContent(t *testing.T) {
	ctx := context.Background()
	store, embedder := newStore(t)

	for _, content := range []string{"", "   ", "\n\t "} {
		status, err := store.Add(ctx, "u1", "s1", "user", content, nil)
		require.NoError(t, err)
		assert.Equal(t, memory.AddSkippedBlank, status)
	}

	// Blank content must not reach the embedder.
	assert.Empty(t, embedder.Calls())
}

func TestAddValidation(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	_, err := store.Add(ctx, "", "s1", "user", "x", nil)
	assert.ErrorIs(t, err, memory.ErrEmptyUserID)

	_, err = store.Add(ctx, "u1", "s1", "system", "x", nil)
	assert.ErrorIs(t, err, memory.ErrInvalidRole)
}

func TestAddEmbedderError(t *testing.T) {
	ctx := context.Background()
	store, embedder := newStore(t)

	sentinel := errors.New("embedder down")
	embedder.SetError(sentinel)

	_, err := store.Add(ctx, "u1", "s1", "user", "content", nil)
	assert.ErrorIs(t, err, sentinel)
}

func TestSessionTurnsChronological(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	for _, content := range []string{"one", "two", "three"} {
		_, err := store.Add(ctx, "u1", "s1", "user", content, nil)
		require.NoError(t, err)
	}
	_, err := store.Add(ctx, "u1", "other", "user", "elsewhere", nil)
	require.NoError(t, err)

	records, err := store.SessionTurns(ctx, "u1", "s1")
	require.NoError(t, err)
	require.Len(t, records, 3)

	var contents []string
	for _, rec := range records {
		contents = append(contents, rec.Content)
	}
	assert.Equal(t, []string{"one", "two", "three"}, contents)
}

func TestDeleteUserIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	_, err := store.Add(ctx, "u1", "s1", "user", "a", nil)
	require.NoError(t, err)
	_, err = store.Add(ctx, "u1", "s2", "user", "b", nil)
	require.NoError(t, err)
	_, err = store.Add(ctx, "u2", "s1", "user", "c", nil)
	require.NoError(t, err)

	removed, err := store.DeleteUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	removed, err = store.DeleteUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)

	results, err := store.Search(ctx, "u2", "c", 5, "")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestDeleteSession(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	_, err := store.Add(ctx, "u1", "s1", "user", "a", nil)
	require.NoError(t, err)
	_, err = store.Add(ctx, "u1", "s2", "user", "b", nil)
	require.NoError(t, err)

	removed, err := store.DeleteSession(ctx, "u1", "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	records, err := store.SessionTurns(ctx, "u1", "s2")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
