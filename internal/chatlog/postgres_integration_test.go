package chatlog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmate-ai/healthmate/internal/chatlog"
	"github.com/healthmate-ai/healthmate/internal/log"
	"github.com/healthmate-ai/healthmate/internal/testutil"
)

func TestPostgresStoreRoundTrip(t *testing.T) {
	pool := testutil.StartPostgres(t)
	ctx := context.Background()

	store, err := chatlog.NewPostgresStore(pool, log.NewNop())
	require.NoError(t, err)

	id, err := store.Append(ctx, chatlog.Turn{
		UserID:    "u1",
		SessionID: "s1",
		Role:      chatlog.RoleUser,
		Content:   "I have a headache",
		Embedded:  true,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	_, err = store.Append(ctx, chatlog.Turn{
		UserID:    "u1",
		SessionID: "s1",
		Role:      chatlog.RoleAssistant,
		Content:   "Partial answer",
		ErrorTag:  "503 service unavailable",
	})
	require.NoError(t, err)

	turns, err := store.SessionTurns(ctx, "u1", "s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "I have a headache", turns[0].Content)
	assert.True(t, turns[0].Embedded)
	assert.Equal(t, "503 service unavailable", turns[1].ErrorTag)
	assert.False(t, turns[1].CreatedAt.IsZero())
}

func TestPostgresStoreSessionsAndInsights(t *testing.T) {
	pool := testutil.StartPostgres(t)
	ctx := context.Background()

	store, err := chatlog.NewPostgresStore(pool, log.NewNop())
	require.NoError(t, err)

	for _, turn := range []chatlog.Turn{
		{UserID: "u1", SessionID: "s1", Role: chatlog.RoleUser, Content: "about sleep"},
		{UserID: "u1", SessionID: "s1", Role: chatlog.RoleAssistant, Content: "sleep advice"},
		{UserID: "u1", SessionID: "s2", Role: chatlog.RoleUser, Content: "about fever"},
		{UserID: "u2", SessionID: "s9", Role: chatlog.RoleUser, Content: "other user"},
	} {
		_, err := store.Append(ctx, turn)
		require.NoError(t, err)
	}

	sessions, err := store.Sessions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	// Most recent session first.
	assert.Equal(t, "s2", sessions[0].SessionID)
	assert.Equal(t, 1, sessions[0].MessageCount)
	assert.Equal(t, 2, sessions[1].MessageCount)

	ins, err := store.Insights(ctx, "u1", 5)
	require.NoError(t, err)
	assert.Equal(t, 3, ins.TotalMessages)
	assert.Equal(t, 2, ins.TotalSessions)
	// Only user-role turns count as topics, newest first.
	require.Len(t, ins.RecentTopics, 2)
	assert.Equal(t, "about fever", ins.RecentTopics[0].Content)
}

func TestPostgresStoreDeletes(t *testing.T) {
	pool := testutil.StartPostgres(t)
	ctx := context.Background()

	store, err := chatlog.NewPostgresStore(pool, log.NewNop())
	require.NoError(t, err)

	for _, turn := range []chatlog.Turn{
		{UserID: "u1", SessionID: "s1", Role: chatlog.RoleUser, Content: "a"},
		{UserID: "u1", SessionID: "s2", Role: chatlog.RoleUser, Content: "b"},
	} {
		_, err := store.Append(ctx, turn)
		require.NoError(t, err)
	}

	n, err := store.DeleteSession(ctx, "u1", "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.DeleteUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Idempotent.
	n, err = store.DeleteUser(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPostgresStoreValidation(t *testing.T) {
	pool := testutil.StartPostgres(t)
	ctx := context.Background()

	store, err := chatlog.NewPostgresStore(pool, log.NewNop())
	require.NoError(t, err)

	_, err = store.Append(ctx, chatlog.Turn{SessionID: "s1", Role: chatlog.RoleUser})
	assert.ErrorIs(t, err, chatlog.ErrEmptyUserID)

	_, err = store.Append(ctx, chatlog.Turn{UserID: "u1", SessionID: "s1", Role: "system"})
	assert.ErrorIs(t, err, chatlog.ErrInvalidRole)
}
