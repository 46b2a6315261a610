package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCaseInsensitiveDedup(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCatalog()

	first, err := c.Ensure(ctx, "Headache")
	require.NoError(t, err)

	// Different casing maps to the same entry with the original casing.
	second, err := c.Ensure(ctx, "HEADACHE")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Headache", second.Name)

	symptoms, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, symptoms, 1)
}

func TestEnsureTrimsAndRejectsBlank(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCatalog()

	sym, err := c.Ensure(ctx, "  fever  ")
	require.NoError(t, err)
	assert.Equal(t, "fever", sym.Name)

	_, err = c.Ensure(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestListSorted(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCatalog()

	for _, name := range []string{"nausea", "chills", "fatigue"} {
		_, err := c.Ensure(ctx, name)
		require.NoError(t, err)
	}

	symptoms, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, symptoms, 3)
	assert.Equal(t, "chills", symptoms[0].Name)
	assert.Equal(t, "fatigue", symptoms[1].Name)
	assert.Equal(t, "nausea", symptoms[2].Name)
}
