// Package testutil provides test doubles and harnesses shared across
// packages: deterministic embedders, scripted streamers, an SSE parser,
// and a disposable pgvector container.
package testutil

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"strings"
	"sync"

	"github.com/healthmate-ai/healthmate/internal/llm"
)

// MockEmbedder is a deterministic llm.Embedder for tests.
//
// Unless a vector is pinned via SetVector, Embed derives a unit vector from
// the SHA-256 of the input text, so identical texts always embed identically
// and distinct texts are nearly orthogonal.
type MockEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float32
	calls   []string
	err     error
	dim     int
}

// NewMockEmbedder creates an embedder producing vectors of the standard
// dimension.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{
		vectors: map[string][]float32{},
		dim:     int(llm.VectorDimension),
	}
}

// Embed returns the pinned or derived vector for text.
func (m *MockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, text)
	if m.err != nil {
		return nil, m.err
	}
	if vec, ok := m.vectors[text]; ok {
		return vec, nil
	}
	return deterministicVector(text, m.dim), nil
}

// SetVector pins the vector returned for an exact input text.
func (m *MockEmbedder) SetVector(text string, vec []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vectors[text] = vec
}

// SetError makes all subsequent Embed calls fail with err.
func (m *MockEmbedder) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns the texts embedded so far.
func (m *MockEmbedder) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// deterministicVector expands the SHA-256 of text into a normalized vector.
func deterministicVector(text string, dim int) []float32 {
	vec := make([]float32, dim)
	seed := sha256.Sum256([]byte(text))
	buf := seed[:]

	var norm float64
	for i := range vec {
		if i*4+4 > len(buf) {
			next := sha256.Sum256(buf)
			buf = append(buf, next[:]...)
		}
		bits := binary.BigEndian.Uint32(buf[i*4 : i*4+4])
		// Map to [-1, 1).
		v := float64(int32(bits)) / float64(math.MaxInt32)
		vec[i] = float32(v)
		norm += v * v
	}

	norm = math.Sqrt(norm)
	if norm == 0 {
		return vec
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}

// StreamScript describes one scripted Stream call: the chunks to deliver,
// then an optional error returned after delivery.
type StreamScript struct {
	Chunks []string
	Err    error
}

// ScriptedStreamer is an llm.Streamer that plays back scripts in order.
// The last script repeats when calls outnumber scripts. Safe for
// concurrent use.
type ScriptedStreamer struct {
	mu       sync.Mutex
	scripts  []StreamScript
	requests []llm.Request
	calls    int
}

// NewScriptedStreamer creates a streamer playing the given scripts.
func NewScriptedStreamer(scripts ...StreamScript) *ScriptedStreamer {
	return &ScriptedStreamer{scripts: scripts}
}

// Stream delivers the next script's chunks through onChunk and returns the
// accumulated text. Forwarding stops when onChunk errors; a scripted error
// is returned after all chunks were delivered.
func (s *ScriptedStreamer) Stream(ctx context.Context, req llm.Request, onChunk llm.ChunkFunc) (string, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	idx := s.calls
	s.calls++
	if idx >= len(s.scripts) {
		idx = len(s.scripts) - 1
	}
	var script StreamScript
	if idx >= 0 {
		script = s.scripts[idx]
	}
	s.mu.Unlock()

	var b strings.Builder
	for _, chunk := range script.Chunks {
		if err := ctx.Err(); err != nil {
			return b.String(), err
		}
		b.WriteString(chunk)
		if onChunk != nil {
			if err := onChunk(ctx, chunk); err != nil {
				return b.String(), err
			}
		}
	}
	if script.Err != nil {
		return b.String(), script.Err
	}
	return b.String(), nil
}

// Calls returns how many times Stream was invoked.
func (s *ScriptedStreamer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Requests returns the requests passed to Stream so far.
func (s *ScriptedStreamer) Requests() []llm.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]llm.Request, len(s.requests))
	copy(out, s.requests)
	return out
}
