package chat_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/healthmate-ai/healthmate/internal/chat"
	"github.com/healthmate-ai/healthmate/internal/chatlog"
	"github.com/healthmate-ai/healthmate/internal/llm"
	"github.com/healthmate-ai/healthmate/internal/log"
	"github.com/healthmate-ai/healthmate/internal/memory"
	"github.com/healthmate-ai/healthmate/internal/prompt"
	"github.com/healthmate-ai/healthmate/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixture struct {
	svc      *chat.Service
	turns    *chatlog.InMemoryStore
	memory   *memory.InMemoryStore
	streamer *testutil.ScriptedStreamer
}

func newFixture(t *testing.T, scripts ...testutil.StreamScript) *fixture {
	t.Helper()

	turns := chatlog.NewInMemoryStore()
	store, err := memory.NewInMemoryStore(testutil.NewMockEmbedder())
	require.NoError(t, err)

	builder, err := prompt.NewAssembler(prompt.Config{
		Memory: store,
		Logger: log.NewNop(),
	})
	require.NoError(t, err)

	streamer := testutil.NewScriptedStreamer(scripts...)
	svc, err := chat.NewService(chat.Config{
		Logger:  log.NewNop(),
		Turns:   turns,
		Memory:  store,
		Builder: builder,
		LLM:     streamer,
		Retry: chat.RetryConfig{
			MaxRetries:      2,
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
		},
	})
	require.NoError(t, err)

	return &fixture{svc: svc, turns: turns, memory: store, streamer: streamer}
}

type collector struct {
	mu     sync.Mutex
	chunks []string
}

func (c *collector) onChunk(_ context.Context, chunk string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chunks = append(c.chunks, chunk)
	return nil
}

func (c *collector) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.chunks))
	copy(out, c.chunks)
	return out
}

func TestStreamHappyPath(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testutil.StreamScript{Chunks: []string{"Hello", " world"}})
	var c collector

	res, err := f.svc.Stream(ctx, "u1", "s1", "How do I treat a cold?", c.onChunk)
	require.NoError(t, err)
	f.svc.Wait()

	assert.Equal(t, chat.StateCompleted, res.State)
	assert.Equal(t, "s1", res.SessionID)
	assert.Equal(t, "Hello world", res.Response)
	assert.Equal(t, []string{"Hello", " world"}, c.all())

	// Both turns are durably logged in order.
	turns, err := f.turns.SessionTurns(ctx, "u1", "s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, chatlog.RoleUser, turns[0].Role)
	assert.Equal(t, "How do I treat a cold?", turns[0].Content)
	assert.True(t, turns[0].Embedded)
	assert.Equal(t, chatlog.RoleAssistant, turns[1].Role)
	assert.Equal(t, "Hello world", turns[1].Content)
	assert.Empty(t, turns[1].ErrorTag)

	// Both turns landed in vector memory.
	records, err := f.memory.SessionTurns(ctx, "u1", "s1")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestStreamAssignsSessionID(t *testing.T) {
	f := newFixture(t, testutil.StreamScript{Chunks: []string{"hi"}})

	res, err := f.svc.Stream(context.Background(), "u1", "", "hello", nil)
	require.NoError(t, err)
	f.svc.Wait()

	assert.NotEmpty(t, res.SessionID)
}

func TestStreamErrorAfterPartialOutput(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testutil.StreamScript{
		Chunks: []string{"Partial answer"},
		Err:    errors.New("503 service unavailable"),
	})
	var c collector

	res, err := f.svc.Stream(ctx, "u1", "s1", "question", c.onChunk)
	require.Error(t, err)
	f.svc.Wait()

	assert.Equal(t, chat.StateFailed, res.State)
	assert.Equal(t, "Partial answer", res.Response)

	// A partial stream is never retried, even for a retryable error.
	assert.Equal(t, 1, f.streamer.Calls())

	// The client sees the partial output plus a final error marker.
	chunks := c.all()
	require.Len(t, chunks, 2)
	assert.Equal(t, "Partial answer", chunks[0])
	assert.True(t, strings.HasPrefix(chunks[1], chat.ErrorMarker))
	assert.Contains(t, chunks[1], "503 service unavailable")

	// The partial response is persisted with an error tag.
	turns, err := f.turns.SessionTurns(ctx, "u1", "s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "Partial answer", turns[1].Content)
	assert.Contains(t, turns[1].ErrorTag, "503")
	assert.False(t, turns[1].Embedded)
}

func TestStreamRetriesTransientErrors(t *testing.T) {
	f := newFixture(t,
		testutil.StreamScript{Err: errors.New("503 service unavailable")},
		testutil.StreamScript{Chunks: []string{"recovered"}},
	)

	res, err := f.svc.Stream(context.Background(), "u1", "s1", "question", nil)
	require.NoError(t, err)
	f.svc.Wait()

	assert.Equal(t, chat.StateCompleted, res.State)
	assert.Equal(t, "recovered", res.Response)
	assert.Equal(t, 2, f.streamer.Calls())
}

func TestStreamDoesNotRetryPermanentErrors(t *testing.T) {
	f := newFixture(t, testutil.StreamScript{Err: errors.New("invalid argument")})

	_, err := f.svc.Stream(context.Background(), "u1", "s1", "question", nil)
	require.Error(t, err)
	f.svc.Wait()

	assert.Equal(t, 1, f.streamer.Calls())
}

func TestStreamFailureBeforeFirstChunkRecordsErrorTurn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testutil.StreamScript{Err: errors.New("invalid argument")})

	res, err := f.svc.Stream(ctx, "u1", "s1", "question", nil)
	require.Error(t, err)
	f.svc.Wait()

	assert.Equal(t, chat.StateFailed, res.State)
	assert.Empty(t, res.Response)

	// The failed turn still gets an assistant row, empty but tagged, so
	// the transcript shows what happened to the question.
	turns, err := f.turns.SessionTurns(ctx, "u1", "s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, chatlog.RoleAssistant, turns[1].Role)
	assert.Empty(t, turns[1].Content)
	assert.Contains(t, turns[1].ErrorTag, "invalid argument")
	assert.False(t, turns[1].Embedded)
}

type failingBuilder struct {
	err error
}

func (b *failingBuilder) Build(context.Context, string, string) (llm.Request, error) {
	return llm.Request{}, b.err
}

func TestStreamContextBuildFailureFallsBackToRawMessage(t *testing.T) {
	turns := chatlog.NewInMemoryStore()
	streamer := testutil.NewScriptedStreamer(testutil.StreamScript{Chunks: []string{"still answered"}})
	svc, err := chat.NewService(chat.Config{
		Logger:  log.NewNop(),
		Turns:   turns,
		Builder: &failingBuilder{err: errors.New("context sources unavailable")},
		LLM:     streamer,
	})
	require.NoError(t, err)

	res, err := svc.Stream(context.Background(), "u1", "s1", "I have a headache", nil)
	require.NoError(t, err)
	svc.Wait()

	assert.Equal(t, chat.StateCompleted, res.State)
	assert.Equal(t, "still answered", res.Response)

	// The model still gets the user's message and the standing
	// instructions, just no assembled context.
	reqs := streamer.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "I have a headache", reqs[0].Prompt)
	assert.Equal(t, prompt.SystemPrompt, reqs[0].System)
}

func TestStreamEmptyResponseIsValid(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testutil.StreamScript{})

	res, err := f.svc.Stream(ctx, "u1", "s1", "question", nil)
	require.NoError(t, err)
	f.svc.Wait()

	assert.Equal(t, chat.StateCompleted, res.State)
	assert.Empty(t, res.Response)
}

func TestStreamClientDisconnectKeepsAccumulating(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testutil.StreamScript{Chunks: []string{"one", "two", "three"}})

	var delivered []string
	onChunk := func(_ context.Context, chunk string) error {
		delivered = append(delivered, chunk)
		if len(delivered) == 1 {
			return errors.New("client gone")
		}
		return nil
	}

	res, err := f.svc.Stream(ctx, "u1", "s1", "question", onChunk)
	require.NoError(t, err)
	f.svc.Wait()

	// Forwarding stopped after the failure, accumulation did not.
	assert.Equal(t, []string{"one"}, delivered)
	assert.Equal(t, "onetwothree", res.Response)

	turns, err := f.turns.SessionTurns(ctx, "u1", "s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "onetwothree", turns[1].Content)
}

func TestStreamValidation(t *testing.T) {
	f := newFixture(t, testutil.StreamScript{Chunks: []string{"x"}})

	_, err := f.svc.Stream(context.Background(), "", "s1", "question", nil)
	assert.Error(t, err)

	_, err = f.svc.Stream(context.Background(), "u1", "s1", "  ", nil)
	assert.Error(t, err)
}

func TestStreamCircuitOpensAfterRepeatedFailures(t *testing.T) {
	turns := chatlog.NewInMemoryStore()
	builder, err := prompt.NewAssembler(prompt.Config{Logger: log.NewNop()})
	require.NoError(t, err)

	streamer := testutil.NewScriptedStreamer(testutil.StreamScript{Err: errors.New("invalid argument")})
	svc, err := chat.NewService(chat.Config{
		Logger:  log.NewNop(),
		Turns:   turns,
		Builder: builder,
		LLM:     streamer,
		Retry:   chat.RetryConfig{MaxRetries: 1, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond},
		Breaker: chat.CircuitBreakerConfig{FailureThreshold: 2, SuccessThreshold: 1, Timeout: time.Hour},
	})
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := svc.Stream(ctx, "u1", "s1", "question", nil)
		require.Error(t, err)
	}
	assert.Equal(t, chat.CircuitOpen, svc.Breaker().State())

	_, err = svc.Stream(ctx, "u1", "s1", "question", nil)
	assert.ErrorIs(t, err, chat.ErrCircuitOpen)
	// The rejected call never reached the provider.
	assert.Equal(t, 2, streamer.Calls())

	svc.Wait()
}

func TestSymptomMessage(t *testing.T) {
	msg := chat.SymptomMessage([]string{"headache", "fever", "chills"})
	assert.Equal(t, "I'm experiencing the following symptoms: headache, fever, chills", msg)
}
