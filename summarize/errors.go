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
	"errors"
	"fmt"

	"github.com/poiesic/sumry/ai"
)

var (
	// ErrNoContent is returned when the document is empty or whitespace only.
	ErrNoContent = errors.New("no content to summarize")

	// ErrGeneratorRequired is returned when no generator is supplied.
	ErrGeneratorRequired = errors.New("generator required")

	// ErrInvalidConcurrency is returned when the concurrency limit is negative.
	ErrInvalidConcurrency = errors.New("concurrency must be non-negative")
)

// ChunkError is a failed attempt to summarize one chunk.
type ChunkError struct {
	Index int
	Cause ai.Cause
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d: %s: %v", e.Index, e.Cause, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}
