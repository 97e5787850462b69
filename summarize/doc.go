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


// Package summarize turns long documents into structured technical summaries.
//
// Summarization is a two-stage map-reduce over a text-generation service:
//
//  1. The document is split into overlapping chunks (package chunk).
//  2. Every chunk is summarized independently and in parallel on a bounded
//     worker pool. Each call is retried with exponential backoff; a chunk
//     that still fails is recorded and does not abort the run.
//  3. The successful extracts, labeled with their original chunk index, are
//     merged by one final synthesis call into a document with five fixed
//     sections.
//
// Partial failure is part of the contract. If every chunk fails the result is
// the AllChunksFailed sentinel and no synthesis call is made; if synthesis
// fails after its retries the result is the SynthesisFailed sentinel. Neither
// case is reported as a Go error. Errors are reserved for empty input
// (ErrNoContent) and caller cancellation.
//
// # Usage
//
//	gen, _ := ollama.NewGenerator(ai.DefaultConfig())
//	s, err := summarize.NewSummarizer(gen, summarize.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Release()
//
//	text, err := s.Summarize(ctx, document)
//
// Run and RunWithMonitor return a Report with per-chunk outcomes, and a
// Monitor can observe progress while the run is in flight.
package summarize
