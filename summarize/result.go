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


package summarize

import (
	"time"

	"github.com/poiesic/sumry/ai"
)

// Sentinel summaries returned in place of a synthesized document.
const (
	AllChunksFailed = "All chunks failed to summarize."
	SynthesisFailed = "Failed to generate final summary."
)

// Status describes how a run ended.
type Status string

const (
	StatusComplete        Status = "complete"
	StatusAllChunksFailed Status = "all_chunks_failed"
	StatusSynthesisFailed Status = "synthesis_failed"
)

// Failure records a chunk that could not be summarized.
type Failure struct {
	Index    int
	Cause    ai.Cause
	Attempts int
	Err      error
}

// ChunkResult is the terminal outcome for one chunk.
// Exactly one of Extract or Failure is meaningful.
type ChunkResult struct {
	Index   int
	Extract string
	Failure *Failure
}

// OK reports whether the chunk was summarized.
func (r ChunkResult) OK() bool {
	return r.Failure == nil
}

// Report describes a completed run.
type Report struct {
	// Text is the final document or one of the sentinel summaries.
	Text   string
	Status Status

	// Results holds one entry per chunk, ordered by chunk index.
	Results []ChunkResult

	Chunks    int
	Succeeded int
	Failed    int
	Failures  []*Failure

	// SynthesisAttempts is zero when synthesis was skipped.
	SynthesisAttempts int

	Elapsed time.Duration
}

// Complete reports whether a synthesized document was produced.
func (r *Report) Complete() bool {
	return r.Status == StatusComplete
}
