package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmate-ai/healthmate/internal/log"
	"github.com/healthmate-ai/healthmate/internal/testutil"
)

func TestWriteJSONSetsHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusCreated, map[string]string{"a": "b"}, log.NewNop())

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Length"))
	assert.JSONEq(t, `{"a":"b"}`, rec.Body.String())
}

func TestWriteJSONEncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	// Channels cannot be JSON-encoded.
	writeJSON(rec, http.StatusOK, make(chan int), log.NewNop())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusBadRequest, "invalid_request", "bad input", log.NewNop())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_request","message":"bad input"}`, rec.Body.String())
}

func TestWriteEventFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	err := writeEvent(rec, rec, EventChunk, ChunkPayload{Text: "hi"})
	require.NoError(t, err)

	assert.True(t, rec.Flushed)

	events := testutil.ParseSSEEvents(rec.Body.String())
	require.Len(t, events, 1)
	assert.Equal(t, "chunk", events[0].Event)
	assert.JSONEq(t, `{"text":"hi"}`, events[0].Data)
}
