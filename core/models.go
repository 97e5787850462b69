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


package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SummaryKey returns the cache key for a document summarized under profile.
// The profile names everything besides the text that shapes the summary,
// such as the model and chunking settings; any difference yields a new key.
func SummaryKey(profile, text string) ID {
	return IDFromContent(profile + "\x00" + text)
}

// SummaryRecord is a cached final summary.
type SummaryRecord struct {
	Id        ID
	Source    string    // Where the document came from (URL, file path or "text")
	Model     string    // Model that produced the summary
	Summary   string    // Synthesized document
	Chunks    int       // Number of chunks the document was split into
	Failed    int       // Chunks that could not be summarized
	CreatedAt time.Time // When the summary was stored
}
