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
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/poiesic/sumry/ai"
	"github.com/poiesic/sumry/chunk"
)

// unitPanic carries a panic out of a worker so it can be re-raised on the caller.
type unitPanic struct {
	index int
	value any
	stack []byte
}

func (p *unitPanic) String() string {
	return fmt.Sprintf("panic summarizing chunk %d: %v\n%s", p.index, p.value, p.stack)
}

// dispatch summarizes every chunk on the worker pool and returns exactly one
// result per chunk, ordered by index. It blocks until all units finish.
func (s *Summarizer) dispatch(ctx context.Context, chunks []chunk.Chunk, monitor Monitor) []ChunkResult {
	results := make([]ChunkResult, len(chunks))
	panics := make([]*unitPanic, len(chunks))

	var wg sync.WaitGroup
	for i, ch := range chunks {
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panics[i] = &unitPanic{index: ch.Index, value: r, stack: debug.Stack()}
				}
			}()

			results[i] = s.summarizeWithRetry(ctx, ch, monitor)
			monitor.ChunkDone(results[i])
		})
		if err != nil {
			wg.Done()
			s.logger.Error("failed to submit chunk", "chunk", ch.Index, "err", err)
			results[i] = ChunkResult{
				Index:   ch.Index,
				Failure: &Failure{Index: ch.Index, Cause: ai.CauseOther, Err: err},
			}
			monitor.ChunkDone(results[i])
		}
	}
	wg.Wait()

	for _, p := range panics {
		if p != nil {
			panic(p.String())
		}
	}
	return results
}

// summarizeWithRetry runs the chunk summarizer under the retry policy and
// converts the outcome into a result value.
func (s *Summarizer) summarizeWithRetry(ctx context.Context, ch chunk.Chunk, monitor Monitor) ChunkResult {
	retrier := s.newRetrier(func(attempt int, delay time.Duration, err error) {
		s.logger.Warn("chunk summary failed, retrying",
			"chunk", ch.Index,
			"attempt", attempt,
			"delay", delay,
			"err", err)
		monitor.ChunkRetry(ch.Index, attempt, err)
	})

	var extract string
	attempts := 0
	err := retrier.Run(ctx, func(ctx context.Context, attempt int) error {
		attempts = attempt
		out, err := s.summarizeChunk(ctx, ch)
		if err != nil {
			return err
		}
		extract = out
		return nil
	})
	if err == nil {
		return ChunkResult{Index: ch.Index, Extract: extract}
	}

	failure := &Failure{Index: ch.Index, Cause: ai.Classify(err), Attempts: attempts, Err: err}
	var chunkErr *ChunkError
	if errors.As(err, &chunkErr) {
		failure.Cause = chunkErr.Cause
		failure.Err = chunkErr.Err
	}
	s.logger.Error("chunk summary failed", "chunk", ch.Index, "attempts", attempts, "cause", failure.Cause, "err", failure.Err)

	return ChunkResult{Index: ch.Index, Failure: failure}
}
