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
	"log/slog"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/sumry/ai"
	"github.com/poiesic/sumry/chunk"
	"github.com/poiesic/sumry/retry"
)

// Summarizer runs the chunk, summarize and synthesize pipeline.
// It is safe for concurrent use; concurrent runs share the worker pool.
type Summarizer struct {
	generator ai.Generator
	config    Config
	chunker   *chunk.Chunker
	pool      *ants.Pool
	clock     retry.Clock
	logger    *slog.Logger
}

// Option configures a Summarizer.
type Option func(*Summarizer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Summarizer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithClock replaces the clock used for retry backoff.
func WithClock(clock retry.Clock) Option {
	return func(s *Summarizer) error {
		s.clock = clock
		return nil
	}
}

// NewSummarizer creates a summarizer that sends requests to generator.
// A nil config uses DefaultConfig.
func NewSummarizer(generator ai.Generator, config *Config, opts ...Option) (*Summarizer, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	chunker, err := chunk.New(config.ChunkSize, config.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	// Zero concurrency maps to an unbounded pool: one worker per chunk.
	poolSize := config.Concurrency
	if poolSize == 0 {
		poolSize = -1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Summarizer{
		generator: generator,
		config:    *config,
		chunker:   chunker,
		pool:      pool,
		logger:    slog.Default().With("component", "summarizer"),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}

	return s, nil
}

// Config returns a copy of the summarizer configuration.
func (s *Summarizer) Config() Config {
	return s.config
}

// Summarize returns the final summary for document.
// The result is a synthesized document or one of the sentinel summaries.
func (s *Summarizer) Summarize(ctx context.Context, document string) (string, error) {
	report, err := s.Run(ctx, document)
	if err != nil {
		return "", err
	}
	return report.Text, nil
}

// Run summarizes document and returns the full report.
func (s *Summarizer) Run(ctx context.Context, document string) (*Report, error) {
	return s.RunWithMonitor(ctx, document, nil)
}

// RunWithMonitor summarizes document and reports progress to monitor.
// A nil monitor is allowed.
func (s *Summarizer) RunWithMonitor(ctx context.Context, document string, monitor Monitor) (*Report, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if strings.TrimSpace(document) == "" {
		return nil, ErrNoContent
	}

	started := time.Now()
	chunks := s.chunker.Split(document)
	s.logger.Info("summarizing document", "chars", len([]rune(document)), "chunks", len(chunks))
	monitor.Start(len(chunks))

	// 1. Summarize every chunk in parallel
	results := s.dispatch(ctx, chunks, monitor)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{
		Results: results,
		Chunks:  len(results),
	}
	for _, r := range results {
		if r.OK() {
			report.Succeeded++
		} else {
			report.Failed++
			report.Failures = append(report.Failures, r.Failure)
		}
	}
	if report.Failed > 0 {
		s.logger.Warn("some chunks failed to summarize", "failed", report.Failed, "chunks", report.Chunks)
	}

	// 2. Merge the successful extracts
	if err := s.synthesize(ctx, report, monitor); err != nil {
		return nil, err
	}

	report.Elapsed = time.Since(started)
	s.logger.Info("summarization finished",
		"status", report.Status,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"elapsed", report.Elapsed)
	monitor.Finish(report)

	return report, nil
}

// Release releases the worker pool.
// The summarizer should not be used after calling Release.
func (s *Summarizer) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// newRetrier builds a retrier for one unit of work.
func (s *Summarizer) newRetrier(notify retry.NotifyFunc) *retry.Retrier {
	opts := []retry.Option{retry.WithLogger(s.logger)}
	if s.clock != nil {
		opts = append(opts, retry.WithClock(s.clock))
	}
	if notify != nil {
		opts = append(opts, retry.WithNotify(notify))
	}
	return retry.New(s.config.Policy(), opts...)
}
