package knowledge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEmptyText(t *testing.T) {
	s := NewSplitter()
	assert.Nil(t, s.Split(""))
}

func TestSplitSmallTextSingleChunk(t *testing.T) {
	s := NewSplitter()
	text := "Short document that fits in one chunk."

	chunks := s.Split(text)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0].Text)
	assert.Equal(t, 0, chunks[0].Start)
	assert.Equal(t, len(text), chunks[0].End)
}

func TestSplitChunksAreVerbatimSlices(t *testing.T) {
	s := NewSplitter()
	var b strings.Builder
	for i := 0; i < 80; i++ {
		b.WriteString("Sentence number one about headaches. Sentence number two about fevers.\n\n")
	}
	text := b.String()

	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.Equal(t, text[c.Start:c.End], c.Text)
		assert.LessOrEqual(t, len(c.Text), s.ChunkSize)
		assert.NotEmpty(t, c.Text)
	}
}

func TestSplitChunksOverlapAndCoverText(t *testing.T) {
	s := NewSplitter()
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 120)

	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)

	// Consecutive chunks overlap and no text is skipped between them.
	for i := 1; i < len(chunks); i++ {
		assert.LessOrEqual(t, chunks[i].Start, chunks[i-1].End)
	}
	assert.Equal(t, 0, chunks[0].Start)
	assert.Equal(t, len(text), chunks[len(chunks)-1].End)
}

func TestSplitPrefersParagraphBoundary(t *testing.T) {
	s := &Splitter{ChunkSize: 100, Overlap: 20}
	para := strings.Repeat("word ", 16) // 80 bytes
	text := para + "\n\n" + strings.Repeat("next paragraph text ", 10)

	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)
	// First cut lands after the paragraph break, not mid-word at byte 100.
	assert.True(t, strings.HasSuffix(chunks[0].Text, "\n\n"))
}

func TestSplitCorpusDocuments(t *testing.T) {
	s := NewSplitter()
	for _, doc := range Corpus() {
		chunks := s.Split(doc.Content)
		require.NotEmpty(t, chunks, "document %s", doc.ID)
		for _, c := range chunks {
			assert.Equal(t, doc.Content[c.Start:c.End], c.Text, "document %s", doc.ID)
		}
	}
}
