package knowledge

import "strings"

// Splitter chunking defaults.
const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
)

// Chunk is a verbatim slice of the source text. Start and End are byte
// offsets into the original, so text[Start:End] == Text always holds.
type Chunk struct {
	Text  string
	Start int
	End   int
}

// Splitter cuts documents into overlapping chunks for embedding.
//
// Cut points prefer natural boundaries, tried in order: paragraph break,
// line break, sentence end, word break. A boundary is only taken when it
// keeps the chunk above half the target size; otherwise the chunk is cut
// at the size limit.
type Splitter struct {
	ChunkSize int
	Overlap   int
}

// NewSplitter creates a splitter with the default chunk size and overlap.
func NewSplitter() *Splitter {
	return &Splitter{ChunkSize: DefaultChunkSize, Overlap: DefaultOverlap}
}

var boundaries = []string{"\n\n", "\n", ". ", " "}

// Split cuts text into chunks. Text at most ChunkSize long yields a single
// chunk; empty text yields none.
func (s *Splitter) Split(text string) []Chunk {
	size := s.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	overlap := s.Overlap
	if overlap < 0 || overlap >= size {
		overlap = DefaultOverlap
	}

	if text == "" {
		return nil
	}
	if len(text) <= size {
		return []Chunk{{Text: text, Start: 0, End: len(text)}}
	}

	chunks := []Chunk{}
	pos := 0
	for pos < len(text) {
		end := pos + size
		if end >= len(text) {
			chunks = append(chunks, Chunk{Text: text[pos:], Start: pos, End: len(text)})
			break
		}

		end = cutPoint(text, pos, end, size)
		chunks = append(chunks, Chunk{Text: text[pos:end], Start: pos, End: end})

		next := end - overlap
		if next <= pos {
			// Forward progress guard for pathological overlap settings.
			next = end
		}
		pos = next
	}
	return chunks
}

// cutPoint finds the best end offset for a chunk starting at pos with a
// hard limit at max. Boundaries in the latter half of the window win over
// a mid-word cut.
func cutPoint(text string, pos, max, size int) int {
	window := text[pos:max]
	minCut := size / 2
	for _, sep := range boundaries {
		idx := strings.LastIndex(window, sep)
		if idx >= minCut {
			return pos + idx + len(sep)
		}
	}
	return max
}
