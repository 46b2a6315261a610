// Package llm defines the boundary to the language model provider.
//
// The rest of the application depends on the small Embedder and Streamer
// interfaces; the Gemini implementation lives in googleai.go. Tests use
// in-process fakes from internal/testutil.
package llm

import (
	"context"
	"time"
)

// VectorDimension is the embedding dimensionality used across all pgvector
// columns. gemini-embedding-001 supports truncation to 768 dimensions via
// OutputDimensionality (Matryoshka Representation Learning); keep this in
// sync with the vector(768) columns in db/migrations.
const VectorDimension int32 = 768

// EmbedTimeout limits how long a single embedding call may take.
const EmbedTimeout = 10 * time.Second

// GenerateTimeout limits how long a single streamed generation may take.
const GenerateTimeout = 120 * time.Second

// Embedder converts text into a fixed-dimension vector.
//
// Implementations must be deterministic per model: the same text always
// produces the same vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Request is a single generation request.
type Request struct {
	// System is the system prompt establishing the assistant's behavior.
	System string
	// Prompt is the fully assembled user-turn prompt.
	Prompt string
}

// ChunkFunc receives each streamed text chunk as it arrives.
// Returning an error aborts the stream.
type ChunkFunc func(ctx context.Context, text string) error

// Streamer generates a streamed completion for a request.
//
// Implementations call onChunk for every text chunk in order and return the
// full accumulated text. A completion with zero chunks is valid (empty
// response). Mid-stream provider errors are returned after any chunks
// already delivered.
type Streamer interface {
	Stream(ctx context.Context, req Request, onChunk ChunkFunc) (string, error)
}
