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
	"context"

	"github.com/poiesic/sumry/ai"
	"github.com/poiesic/sumry/chunk"
)

// summarizeChunk makes a single generation call for one chunk.
// Failures are returned as *ChunkError; retrying is the caller's concern.
func (s *Summarizer) summarizeChunk(ctx context.Context, ch chunk.Chunk) (string, error) {
	extract, err := s.generator.Generate(ctx, chunkRequest(s.config.Model, ch))
	if err != nil {
		return "", &ChunkError{Index: ch.Index, Cause: ai.Classify(err), Err: err}
	}
	return extract, nil
}
