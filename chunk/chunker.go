// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package chunk

import (
	"fmt"
	"strings"
)

// DefaultSeparators are tried in order when looking for a break point.
var DefaultSeparators = []string{"\n\n", "\n", ". ", " "}

// Chunk is one contiguous segment of a document.
type Chunk struct {
	// Index is the 1-based position of the chunk.
	Index int

	// Total is the number of chunks the document was split into.
	Total int

	// Text is the chunk content.
	Text string

	// Offset is the rune offset of the chunk's first character in the document.
	Offset int
}

// Chunker splits text into overlapping chunks.
// A Chunker is immutable and safe for concurrent use.
type Chunker struct {
	size       int
	overlap    int
	separators [][]rune
}

// New creates a Chunker producing chunks of at most size characters with
// overlap characters shared between neighbors.
func New(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: got overlap %d for size %d", ErrInvalidOverlap, overlap, size)
	}

	seps := make([][]rune, len(DefaultSeparators))
	for i, s := range DefaultSeparators {
		seps[i] = []rune(s)
	}

	return &Chunker{size: size, overlap: overlap, separators: seps}, nil
}

// Size returns the maximum chunk length in characters.
func (c *Chunker) Size() int {
	return c.size
}

// Overlap returns the number of characters shared by consecutive chunks.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Split divides text into chunks. Empty text yields an empty slice.
func (c *Chunker) Split(text string) []Chunk {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return []Chunk{}
	}

	var chunks []Chunk
	start := 0
	for {
		if n-start <= c.size {
			chunks = append(chunks, Chunk{Text: string(runes[start:]), Offset: start})
			break
		}

		end := c.breakPoint(runes, start)
		chunks = append(chunks, Chunk{Text: string(runes[start:end]), Offset: start})
		start = end - c.overlap
	}

	for i := range chunks {
		chunks[i].Index = i + 1
		chunks[i].Total = len(chunks)
	}
	return chunks
}

// breakPoint returns the exclusive end of the chunk starting at start.
// The result is always greater than start+overlap so the walk progresses.
//
// Separators are tried in priority order, but a break must first fill at
// least half the chunk. Only when no separator reaches that fill is any break
// past the overlap accepted, and failing that the chunk is cut at size.
func (c *Chunker) breakPoint(runes []rune, start int) int {
	limit := start + c.size
	window := runes[start:limit]
	minFill := max(c.size/2, c.overlap+1)

	// Only the last occurrence of each separator matters; an earlier one would end sooner.
	ends := make([]int, len(c.separators))
	for i, sep := range c.separators {
		ends[i] = -1
		if pos := lastIndex(window, sep); pos >= 0 {
			ends[i] = pos + len(sep)
		}
	}

	for _, end := range ends {
		if end >= minFill {
			return start + end
		}
	}
	for _, end := range ends {
		if end > c.overlap {
			return start + end
		}
	}
	return limit
}

// lastIndex returns the index of the last occurrence of sep in s, or -1.
func lastIndex(s, sep []rune) int {
	for i := len(s) - len(sep); i >= 0; i-- {
		match := true
		for j := range sep {
			if s[i+j] != sep[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// Reassemble reconstructs the document from chunks produced by Split.
// Each chunk's overlap with its predecessor is dropped using the recorded offsets.
func Reassemble(chunks []Chunk) string {
	var b strings.Builder
	covered := 0
	for _, ch := range chunks {
		runes := []rune(ch.Text)
		skip := covered - ch.Offset
		if skip < 0 {
			skip = 0
		}
		if skip > len(runes) {
			continue
		}
		b.WriteString(string(runes[skip:]))
		covered = ch.Offset + len(runes)
	}
	return b.String()
}
